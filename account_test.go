package pterodactyl

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestAccountDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/client/account" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"object": "user",
			"attributes": {
				"id": 1, "admin": true, "username": "admin",
				"email": "admin@example.com", "first_name": "Ad",
				"last_name": "Min", "language": "en"
			}
		}`))
	})

	acct, err := c.AccountDetails(context.Background())
	if err != nil {
		t.Fatalf("AccountDetails: %v", err)
	}
	if acct.Username != "admin" || !acct.Admin || acct.Language != "en" {
		t.Errorf("account = %+v", acct)
	}
}

func TestEnableTwoFactorInvalidToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"TwoFactorAuthenticationTokenInvalid","status":"400","detail":""}]}`))
	})

	_, err := c.EnableTwoFactor(context.Background(), "000000")
	if !errors.Is(err, ErrInvalid2FAToken) {
		t.Fatalf("err = %v, want ErrInvalid2FAToken", err)
	}
}

func TestEnableTwoFactorOtherBadRequest(t *testing.T) {
	// Unrecognized 400 bodies fall through to the generic status error.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"SomethingElse"}]}`))
	})

	_, err := c.EnableTwoFactor(context.Background(), "000000")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want StatusError{400}", err)
	}
}

func TestEnableTwoFactorSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"object":"recovery_tokens","attributes":{"tokens":["aaaa","bbbb"]}}`))
	})

	tokens, err := c.EnableTwoFactor(context.Background(), "123456")
	if err != nil {
		t.Fatalf("EnableTwoFactor: %v", err)
	}
	if len(tokens.Tokens) != 2 || tokens.Tokens[0] != "aaaa" {
		t.Errorf("tokens = %+v", tokens)
	}
}

func TestDisableTwoFactorWrongPassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := c.DisableTwoFactor(context.Background(), "hunter2")
	if !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("err = %v, want ErrIncorrectPassword", err)
	}
}

func TestUpdateEmailErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"invalid email", `{"errors":[{"code":"email"}]}`, ErrInvalidEmail},
		{"wrong password", `{"errors":[{"code":"InvalidPasswordProvidedException"}]}`, ErrIncorrectPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			})
			err := c.UpdateEmail(context.Background(), "new@example.com", "hunter2")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateAPIKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"object": "api_key",
			"attributes": {
				"identifier": "wwQ5DJ6X1XaFznQS",
				"description": "test key",
				"allowed_ips": [],
				"last_used_at": null,
				"created_at": "2026-08-30T10:00:00+00:00"
			},
			"meta": {"secret_token": "decrypted_secret"}
		}`))
	})

	key, err := c.CreateAPIKey(context.Background(), "test key")
	if err != nil {
		t.Fatalf("CreateAPIKey: %v", err)
	}
	if key.Key.Identifier != "wwQ5DJ6X1XaFznQS" {
		t.Errorf("Identifier = %q", key.Key.Identifier)
	}
	if key.SecretToken != "decrypted_secret" {
		t.Errorf("SecretToken = %q", key.SecretToken)
	}
	if key.Key.LastUsedAt != nil {
		t.Errorf("LastUsedAt = %v, want nil", key.Key.LastUsedAt)
	}
}
