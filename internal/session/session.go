// Package session holds the signed-in user for one CLI run and the signed
// token that lets a later run pick the same user up again.
//
// A Session is created by the caller and handed to every service call that
// needs "self"; there is no package-level current user.
package session

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
)

type Session struct {
	user *models.User
}

func New() *Session {
	return &Session{}
}

// Current returns a copy of the signed-in user.
func (s *Session) Current() (models.User, bool) {
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Set replaces the signed-in user. Secret material is dropped.
func (s *Session) Set(u models.User) {
	p := u.Public()
	s.user = &p
}

func (s *Session) Clear() {
	s.user = nil
}

// Require returns the current user if it has one of roles (any role when
// roles is empty), or ErrUnauthorized.
func (s *Session) Require(roles ...models.Role) (models.User, error) {
	u, ok := s.Current()
	if !ok {
		return models.User{}, fmt.Errorf("%w: not logged in", common.ErrUnauthorized)
	}
	if len(roles) > 0 && !slices.Contains(roles, u.Role) {
		return models.User{}, fmt.Errorf("%w: %s cannot do this", common.ErrUnauthorized, u.Role)
	}
	return u, nil
}
