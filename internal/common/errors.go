// Package common defines sentinel errors and small helpers shared by every
// RapidBlood layer. Callers should match errors with errors.Is; services wrap
// them with fmt.Errorf("%w: ...") to attach details.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation reports a missing, empty or malformed input field.
	ErrValidation = errors.New("validation error")

	// ErrAuth is the parent of every authentication failure.
	ErrAuth = errors.New("authentication error")

	// ErrInvalidCredentials is returned when identity/secret/role do not match.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)

	// ErrAlreadyRegistered is returned when the identity already exists in
	// the target collection.
	ErrAlreadyRegistered = fmt.Errorf("%w: email already registered", ErrAuth)

	// ErrUnauthorized reports a missing session or a session with the wrong role.
	ErrUnauthorized = errors.New("unauthorized")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when a blood request is not pending.
	ErrInvalidTransition = errors.New("invalid request state transition")
)
