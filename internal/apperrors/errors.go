package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing, invalid or mismatched access credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates a refresh token that failed verification or does not
// match the value currently on record.
var ErrForbidden = errors.New("forbidden")
