package domain

import "errors"

// ErrorKind is the machine-readable tag carried in every error envelope.
type ErrorKind string

const (
	ErrorInvalidInput       ErrorKind = "InvalidInput"
	ErrorDuplicate          ErrorKind = "Duplicate"
	ErrorNotFound           ErrorKind = "NotFound"
	ErrorUnauthorized       ErrorKind = "Unauthorized"
	ErrorDatabaseQuery      ErrorKind = "DatabaseQueryError"
	ErrorDatabaseInsert     ErrorKind = "DatabaseInsertError"
	ErrorDatabaseDocRemove  ErrorKind = "DatabaseDocRemoveError"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Error       ErrorKind `json:"error"`
	Description string    `json:"description"`
}

var (
	// ErrNotFound covers both a missing record and, for owner-gated
	// deletes, a record owned by someone else. The two cases are not
	// distinguished so non-owners cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate maps a unique-index violation from the store.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidInput marks request bodies rejected before any store
	// interaction.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
