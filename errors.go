package identity

import (
	"github.com/goliatone/go-errors"
)

// Stable machine readable codes surfaced alongside every error message.
const (
	TextCodeInvalidCredsInput  = "INVALID_CREDENTIALS"
	TextCodeLoginNotRegistered = "LOGIN_NOT_REGISTERED"
	TextCodeEmptySecret        = "EMPTY_SECRET"
	TextCodeConfigInvalid      = "CONFIG_INVALID"
	TextCodeUserNotRegistered  = "USER_NOT_REGISTERED"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeSessionDecodeError = "SESSION_DECODE_ERROR"
)

// ErrInvalidCredentialsInput is returned before any lookup happens when the
// payload is missing either the login or the password
var ErrInvalidCredentialsInput = errors.New("login and password are required", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidCredsInput)

// ErrLoginNotRegistered covers both an unknown login and a wrong password;
// the message stays generic so responses never leak account existence
var ErrLoginNotRegistered = errors.New("invalid login or password", errors.CategoryAuth).
	WithTextCode(TextCodeLoginNotRegistered)

// ErrNoEmptySecret is the hasher contract error for empty input
var ErrNoEmptySecret = errors.New("secret must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptySecret)

// ErrInvalidSigningConfig is fatal at startup, never per request
var ErrInvalidSigningConfig = errors.New("invalid token signing configuration", errors.CategoryValidation).
	WithTextCode(TextCodeConfigInvalid)

// ErrUserNotRegistered is returned by directory operations targeting an id
// that does not exist
var ErrUserNotRegistered = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotRegistered)

// ErrTokenExpired is surfaced by the verification side of the token service
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired)

// ErrTokenMalformed covers any token we could not parse or verify
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed)

// ErrUnableToDecodeSession means verified claims could not be mapped into a
// session object
var ErrUnableToDecodeSession = errors.New("unable to decode session", errors.CategoryAuth).
	WithTextCode(TextCodeSessionDecodeError)
