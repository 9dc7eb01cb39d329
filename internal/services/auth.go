package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/cryptox"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/dmitrijs2005/rapidblood/internal/session"
)

// AuthService signs users in and out.
//
// Contract:
//   - Login: check the credential for role and make the user current.
//   - Logout: clear the session and the persisted token.
//   - Resume: restore the session from the persisted token of an earlier run.
type AuthService interface {
	Login(ctx context.Context, sess *session.Session, email, secret string, role models.Role) (models.User, error)
	Logout(ctx context.Context, sess *session.Session) error
	Resume(ctx context.Context, sess *session.Session) (models.User, error)
}

// AuthConfig holds the admin credential pair and the session token settings.
type AuthConfig struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret []byte
	SessionTTL    time.Duration
}

type authService struct {
	recs *records.Records
	cfg  AuthConfig
	log  logging.Logger
}

// NewAuthService constructs an AuthService bound to recs and the admin and token settings in cfg.
func NewAuthService(recs *records.Records, cfg AuthConfig, log logging.Logger) AuthService {
	return &authService{recs: recs, cfg: cfg, log: log}
}

func (a *authService) adminUser(email string) models.User {
	return models.User{Name: "Admin", Email: email, Role: models.RoleAdmin}
}

// Login verifies the credential. Admin is checked against the configured
// pair; donors and recipients against the verifier stored with their record.
// Any mismatch is ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, sess *session.Session, email, secret string, role models.Role) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || secret == "" || role == "" {
		return models.User{}, fmt.Errorf("%w: email, password and role are required", common.ErrValidation)
	}

	var user models.User
	switch role {
	case models.RoleAdmin:
		emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.cfg.AdminEmail)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(secret), []byte(a.cfg.AdminPassword)) == 1
		if !emailOK || !passOK {
			a.log.Warn(ctx, "admin login failed", "email", email)
			return models.User{}, common.ErrInvalidCredentials
		}
		user = a.adminUser(email)

	case models.RoleDonor, models.RoleRecipient:
		u, ok, err := a.recs.FindUser(ctx, role, email)
		if err != nil {
			return models.User{}, err
		}
		if !ok || !cryptox.CheckPassword([]byte(secret), u.Salt, u.Verifier) {
			a.log.Warn(ctx, "login failed", "email", email, "role", role)
			return models.User{}, common.ErrInvalidCredentials
		}
		user = u

	default:
		return models.User{}, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}

	sess.Set(user)
	if err := a.persist(ctx, user); err != nil {
		// The session is still usable for this run.
		a.log.Error(ctx, "failed to persist session", "error", err)
	}
	a.log.Info(ctx, "logged in", "email", user.Email, "role", user.Role)

	u, _ := sess.Current()
	return u, nil
}

func (a *authService) persist(ctx context.Context, u models.User) error {
	tok, err := session.GenerateToken(u.Email, u.Role, a.cfg.SessionSecret, a.cfg.SessionTTL, now())
	if err != nil {
		return err
	}
	return a.recs.SetSessionToken(ctx, tok)
}

func (a *authService) Logout(ctx context.Context, sess *session.Session) error {
	if u, ok := sess.Current(); ok {
		a.log.Info(ctx, "logged out", "email", u.Email)
	}
	sess.Clear()
	return a.recs.ClearSessionToken(ctx)
}

// Resume reloads the user named by the persisted token. A token that is
// expired, forged or points at a user that no longer exists is removed and
// ErrUnauthorized returned.
func (a *authService) Resume(ctx context.Context, sess *session.Session) (models.User, error) {
	tok, err := a.recs.SessionToken(ctx)
	if err != nil {
		return models.User{}, err
	}
	if tok == "" {
		return models.User{}, fmt.Errorf("%w: no saved session", common.ErrUnauthorized)
	}

	user, err := a.resolve(ctx, tok)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			a.log.Info(ctx, "discarding saved session", "reason", err)
			if cerr := a.recs.ClearSessionToken(ctx); cerr != nil {
				return models.User{}, cerr
			}
		}
		return models.User{}, err
	}

	sess.Set(user)
	u, _ := sess.Current()
	return u, nil
}

func (a *authService) resolve(ctx context.Context, tok string) (models.User, error) {
	email, role, err := session.ParseToken(tok, a.cfg.SessionSecret, now())
	if err != nil {
		return models.User{}, err
	}

	switch role {
	case models.RoleAdmin:
		if email != a.cfg.AdminEmail {
			return models.User{}, fmt.Errorf("%w: admin account changed", common.ErrUnauthorized)
		}
		return a.adminUser(email), nil
	case models.RoleDonor, models.RoleRecipient:
		u, ok, err := a.recs.FindUser(ctx, role, email)
		if err != nil {
			return models.User{}, err
		}
		if !ok {
			return models.User{}, fmt.Errorf("%w: %s no longer registered", common.ErrUnauthorized, email)
		}
		return u, nil
	}
	return models.User{}, fmt.Errorf("%w: bad role in token", common.ErrUnauthorized)
}
