package pterodactyl

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

// errorHook lets an endpoint translate a panel error body into a more
// specific error before the generic status mapping applies.
type errorHook func(status int, body []byte) error

// apiErrorResponse is the panel's error body shape.
type apiErrorResponse struct {
	Errors []struct {
		Code string `json:"code"`
	} `json:"errors"`
}

func (r apiErrorResponse) has(code string) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	_, err := c.do(ctx, http.MethodGet, endpoint, nil, out, nil)
	return err
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, endpoint, body, out, nil)
	return err
}

func (c *Client) put(ctx context.Context, endpoint string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, endpoint, body, out, nil)
	return err
}

func (c *Client) delete(ctx context.Context, endpoint string) error {
	_, err := c.do(ctx, http.MethodDelete, endpoint, nil, nil, nil)
	return err
}

// rawBody marks a request body that is sent as-is instead of being JSON
// encoded.
type rawBody []byte

// do performs one API request. body may be nil, a rawBody, or any JSON
// encodable value; out may be nil or a pointer to decode the response into.
// The raw response bytes are returned for endpoints that need them.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any, hook errorHook) ([]byte, error) {
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case rawBody:
		reqBody = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if hook != nil {
			if herr := hook(resp.StatusCode, respBody); herr != nil {
				return nil, herr
			}
		}
		return nil, translateStatus(resp.StatusCode)
	}

	c.captureRateLimits(resp)

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, err
		}
	}
	return respBody, nil
}

func (c *Client) captureRateLimits(resp *http.Response) {
	limit, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	if err != nil {
		return
	}
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return
	}
	c.mu.Lock()
	c.rateLimits = &RateLimits{Limit: limit, Remaining: remaining}
	c.mu.Unlock()
}

func translateStatus(status int) error {
	switch status {
	case http.StatusForbidden:
		return ErrPermission
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimit
	default:
		return &StatusError{Code: status}
	}
}
