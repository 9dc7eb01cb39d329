package cli

import (
	"errors"

	"github.com/dmitrijs2005/rapidblood/internal/common"
)

// describe turns an error into the line shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrAlreadyRegistered):
		return "Email already registered."
	case errors.Is(err, common.ErrUnauthorized):
		return "Please log in with the right account first. (" + err.Error() + ")"
	default:
		return err.Error()
	}
}
