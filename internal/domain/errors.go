package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP
// status codes; infrastructure wraps its own failures with %w instead.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("access denied")
	ErrDuplicateQuote     = errors.New("a quote was already submitted for this RFQ")
	ErrRFQNotOpen         = errors.New("RFQ is not accepting quotes")
	ErrRFQNotAccepted     = errors.New("RFQ must be accepted before creating an order")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrInvalidDocument    = errors.New("invalid document type")
)
