// Package apperr defines the error kinds shared by the services. Business code
// wraps these with fmt.Errorf("...: %w", ...) and the HTTP layer matches them
// with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrValidation          = errors.New("validation failed")
	ErrRemoteCall          = errors.New("remote call failed")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenInvalid        = errors.New("token invalid")
)

// Code values travel in the response envelope so a remote caller can recover
// the kind of a failure.
const (
	CodeOK                  = "OK"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeInvalidCredential   = "INVALID_CREDENTIAL"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeValidation          = "VALIDATION"
	CodeRemoteCall          = "REMOTE_CALL_FAILURE"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeInternal            = "INTERNAL"
)

var kinds = []struct {
	err  error
	code string
}{
	{ErrNotFound, CodeNotFound},
	{ErrAlreadyExists, CodeAlreadyExists},
	{ErrInvalidCredential, CodeInvalidCredential},
	{ErrInsufficientBalance, CodeInsufficientBalance},
	{ErrValidation, CodeValidation},
	{ErrRemoteCall, CodeRemoteCall},
	{ErrTokenExpired, CodeTokenExpired},
	{ErrTokenInvalid, CodeTokenInvalid},
}

// CodeOf returns the envelope code for err, CodeInternal when err carries no
// known kind.
func CodeOf(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.code
		}
	}
	return CodeInternal
}

// FromCode maps an envelope code back to its kind. Unknown codes yield nil.
func FromCode(code string) error {
	for _, k := range kinds {
		if k.code == code {
			return k.err
		}
	}
	return nil
}
