package pterodactyl

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Account holds details of the connected account.
type Account struct {
	ID        uint64 `json:"id"`
	Admin     bool   `json:"admin"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Language code, "en" by default.
	Language string `json:"language"`
}

// TwoFactorDetails is the data needed to set up TOTP two-factor auth.
type TwoFactorDetails struct {
	// ImageURLData is the TOTP QR code as a data URL.
	ImageURLData string `json:"image_url_data"`
	// Secret is the TOTP secret.
	Secret string `json:"secret"`
}

// RecoveryTokens are the one-time recovery codes issued when two-factor
// auth is enabled.
type RecoveryTokens struct {
	Tokens []string `json:"tokens"`
}

// APIKey is metadata about a client API key.
type APIKey struct {
	// Identifier is the key's ID.
	Identifier string `json:"identifier"`
	// Description of the key.
	Description string `json:"description"`
	// AllowedIPs that may use this key; empty means any.
	AllowedIPs []string `json:"allowed_ips"`
	// LastUsedAt is when the key was last used, nil if never.
	LastUsedAt *time.Time `json:"last_used_at"`
	// CreatedAt is when the key was created.
	CreatedAt time.Time `json:"created_at"`
}

// CreatedAPIKey is a freshly created API key together with its one-time
// secret token.
type CreatedAPIKey struct {
	Key APIKey
	// SecretToken authenticates with the new key. The panel only returns
	// it at creation time.
	SecretToken string
}

// AccountDetails fetches the connected account's details.
func (c *Client) AccountDetails(ctx context.Context) (*Account, error) {
	var out attributesResponse[Account]
	if err := c.get(ctx, "account", &out); err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// TwoFactorDetails fetches the data needed to set up two-factor auth.
func (c *Client) TwoFactorDetails(ctx context.Context) (*TwoFactorDetails, error) {
	var out dataResponse[TwoFactorDetails]
	if err := c.get(ctx, "account/two-factor", &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// EnableTwoFactor enables two-factor auth using the given TOTP code.
// Returns ErrInvalid2FAToken if the code is rejected.
func (c *Client) EnableTwoFactor(ctx context.Context, code string) (*RecoveryTokens, error) {
	body := struct {
		Code string `json:"code"`
	}{Code: code}
	var out attributesResponse[RecoveryTokens]
	_, err := c.do(ctx, http.MethodPost, "account/two-factor", body, &out, func(status int, respBody []byte) error {
		if status != http.StatusBadRequest {
			return nil
		}
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) != nil {
			return nil
		}
		if apiErr.has("TwoFactorAuthenticationTokenInvalid") {
			return ErrInvalid2FAToken
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out.Attributes, nil
}

// DisableTwoFactor disables two-factor auth. Returns ErrIncorrectPassword
// if the password is wrong.
func (c *Client) DisableTwoFactor(ctx context.Context, password string) error {
	body := struct {
		Password string `json:"password"`
	}{Password: password}
	_, err := c.do(ctx, http.MethodDelete, "account/two-factor", body, nil, func(status int, _ []byte) error {
		if status == http.StatusBadRequest {
			return ErrIncorrectPassword
		}
		return nil
	})
	return err
}

// UpdateEmail changes the account email. Returns ErrIncorrectPassword if
// the password is wrong and ErrInvalidEmail if the address is rejected.
func (c *Client) UpdateEmail(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}
	_, err := c.do(ctx, http.MethodPut, "account/email", body, nil, func(status int, respBody []byte) error {
		if status != http.StatusBadRequest {
			return nil
		}
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) != nil {
			return nil
		}
		switch {
		case apiErr.has("email"):
			return ErrInvalidEmail
		case apiErr.has("InvalidPasswordProvidedException"):
			return ErrIncorrectPassword
		}
		return nil
	})
	return err
}

// UpdatePassword changes the account password. Returns ErrIncorrectPassword
// if the current password is wrong.
func (c *Client) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := struct {
		CurrentPassword      string `json:"current_password"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}{
		CurrentPassword:      currentPassword,
		Password:             newPassword,
		PasswordConfirmation: newPassword,
	}
	_, err := c.do(ctx, http.MethodPut, "account/password", body, nil, func(status int, _ []byte) error {
		if status == http.StatusBadRequest {
			return ErrIncorrectPassword
		}
		return nil
	})
	return err
}

// APIKeys lists the account's API keys.
func (c *Client) APIKeys(ctx context.Context) ([]APIKey, error) {
	var out listResponse[APIKey]
	if err := c.get(ctx, "account/api-keys", &out); err != nil {
		return nil, err
	}
	return out.items(), nil
}

// CreateAPIKey creates a new API key. If allowedIPs is non-empty, only
// those IPs may use the key.
func (c *Client) CreateAPIKey(ctx context.Context, description string, allowedIPs ...string) (*CreatedAPIKey, error) {
	body := struct {
		Description string   `json:"description"`
		AllowedIPs  []string `json:"allowed_ips"`
	}{Description: description, AllowedIPs: allowedIPs}
	var out struct {
		Attributes APIKey `json:"attributes"`
		Meta       struct {
			SecretToken string `json:"secret_token"`
		} `json:"meta"`
	}
	if err := c.post(ctx, "account/api-keys", body, &out); err != nil {
		return nil, err
	}
	return &CreatedAPIKey{Key: out.Attributes, SecretToken: out.Meta.SecretToken}, nil
}

// DeleteAPIKey deletes the API key with the given identifier.
func (c *Client) DeleteAPIKey(ctx context.Context, id string) error {
	return c.delete(ctx, "account/api-keys/"+id)
}
