// Package models defines the records persisted in the RapidBlood store.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/common"
)

// Role selects which collection a user lives in.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleRecipient Role = "recipient"
	RoleAdmin     Role = "admin"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleDonor, RoleRecipient, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", common.ErrValidation, s)
}

// Opposite is the role a user of r chats and exchanges requests with.
// Admin has no opposite.
func (r Role) Opposite() Role {
	switch r {
	case RoleDonor:
		return RoleRecipient
	case RoleRecipient:
		return RoleDonor
	}
	return ""
}

// User is a donor, recipient or the admin. Email is the identity.
type User struct {
	Email        string         `json:"email" yaml:"email"`
	Name         string         `json:"name" yaml:"name"`
	Phone        string         `json:"phone" yaml:"phone"`
	BloodType    bloodtype.Type `json:"blood" yaml:"blood"`
	Location     string         `json:"location" yaml:"location"`
	Role         Role           `json:"role" yaml:"role"`
	Available    bool           `json:"available" yaml:"available"`
	RegisteredAt time.Time      `json:"registeredAt" yaml:"-"`

	Salt     []byte `json:"salt,omitempty" yaml:"-"`
	Verifier []byte `json:"verifier,omitempty" yaml:"-"`
}

// Public returns a copy without secret material, for the session and the UI.
func (u User) Public() User {
	u.Salt = nil
	u.Verifier = nil
	return u
}
