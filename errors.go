package pterodactyl

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the client. HTTP transport failures and
// websocket transport failures are returned verbatim, not wrapped in these.
var (
	// ErrPermission is returned when the API key lacks permission for an
	// operation (HTTP 403).
	ErrPermission = errors.New("pterodactyl: permission denied")

	// ErrNotFound is returned when the requested resource does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("pterodactyl: resource not found")

	// ErrRateLimit is returned when the panel's rate limit has been reached
	// (HTTP 429).
	ErrRateLimit = errors.New("pterodactyl: rate limit reached")

	// ErrInvalid2FAToken is returned by EnableTwoFactor when the TOTP code
	// is rejected.
	ErrInvalid2FAToken = errors.New("pterodactyl: invalid 2fa token")

	// ErrIncorrectPassword is returned when the panel rejects the supplied
	// account password.
	ErrIncorrectPassword = errors.New("pterodactyl: incorrect password")

	// ErrInvalidEmail is returned by UpdateEmail when the panel rejects the
	// new address.
	ErrInvalidEmail = errors.New("pterodactyl: invalid email")

	// ErrPrimaryAllocation is returned when attempting to delete a server's
	// primary network allocation.
	ErrPrimaryAllocation = errors.New("pterodactyl: cannot delete primary allocation")

	// ErrUnexpectedMessage is returned by the websocket loop when the stream
	// desynchronizes: a non-text frame, a malformed envelope or payload, or
	// an application event delivered before authentication completed. It is
	// always fatal to the session.
	ErrUnexpectedMessage = errors.New("pterodactyl: unexpected websocket message")

	// ErrTokenExpired is returned by the websocket loop when the panel
	// reports that the session token expired before it could be refreshed.
	ErrTokenExpired = errors.New("pterodactyl: websocket token expired")
)

// StatusError reports a non-success HTTP status that has no more specific
// error mapping.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pterodactyl: http status %d", e.Code)
}
