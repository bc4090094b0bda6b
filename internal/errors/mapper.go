// internal/errors/mapper.go
package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Authentication failure kinds. Each validation step returns exactly one of
// these; the pipeline stops at the first failure.
var (
	ErrInvalidChallenge   = errors.New("invalid challenge")
	ErrChallengeMismatch  = errors.New("challenge text does not match")
	ErrUnknownUser        = errors.New("user not found")
	ErrEmptyPassword      = errors.New("password is empty")
	ErrCredentialMismatch = errors.New("invalid password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUnconfirmedAccount = errors.New("account is not confirmed")
)

// ErrNotFound is the generic missing-resource error for handlers.
var ErrNotFound = errors.New("not found")

// IsBadCredentials reports whether err belongs to the failure class that must
// stay externally indistinguishable. Captcha and credential problems share one
// response so a caller can probe neither accounts nor passwords.
func IsBadCredentials(err error) bool {
	return errors.Is(err, ErrInvalidChallenge) ||
		errors.Is(err, ErrChallengeMismatch) ||
		errors.Is(err, ErrUnknownUser) ||
		errors.Is(err, ErrEmptyPassword) ||
		errors.Is(err, ErrCredentialMismatch)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// WriteError converts domain/infra errors into HTTP responses.
// Keeps handlers clean by centralizing error mapping.
func WriteError(w http.ResponseWriter, err error) {
	var status int
	var body errorBody

	switch {
	case IsBadCredentials(err):
		status = http.StatusUnauthorized
		body = errorBody{Error: "authentication failed", Code: "bad_credentials"}

	case errors.Is(err, ErrAccountDisabled):
		status = http.StatusForbidden
		body = errorBody{Error: "account is disabled", Code: "account_disabled"}

	case errors.Is(err, ErrUnconfirmedAccount):
		status = http.StatusForbidden
		body = errorBody{Error: "account needs confirmation", Code: "unconfirmed_account"}

	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
		body = errorBody{Error: "not found", Code: "not_found"}

	default:
		status = http.StatusInternalServerError
		body = errorBody{Error: "internal error", Code: "internal"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteInvalidArgument reports a 400 with the given message.
// Use this in handlers for bad input validation.
func WriteInvalidArgument(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, Code: "invalid_argument"})
}

// WriteUnauthorized reports a bare 401, used by the bearer middleware.
func WriteUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, Code: "unauthorized"})
}
