package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/cryptox"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/dmitrijs2005/rapidblood/internal/session"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// Registration is the sign-up form shared by donors and recipients.
type Registration struct {
	Name            string `yaml:"name"`
	Email           string `yaml:"email"`
	Phone           string `yaml:"phone"`
	Password        string `yaml:"password"`
	ConfirmPassword string `yaml:"confirm"`
	BloodType       string `yaml:"blood"`
	Location        string `yaml:"location"`
}

// UserService manages donor and recipient records.
type UserService interface {
	RegisterDonor(ctx context.Context, in Registration) (models.User, error)
	RegisterRecipient(ctx context.Context, in Registration) (models.User, error)
	SetAvailability(ctx context.Context, sess *session.Session, available bool) (models.User, error)
	Peers(ctx context.Context, sess *session.Session) ([]models.User, error)
	SearchPeers(ctx context.Context, sess *session.Session, query string) ([]models.User, error)
	Profile(ctx context.Context, sess *session.Session) (models.User, error)
	Contact(ctx context.Context, sess *session.Session, peerID string) (models.User, error)
}

type userService struct {
	recs *records.Records
	log  logging.Logger
}

// NewUserService constructs a UserService over the donor and recipient collections.
func NewUserService(recs *records.Records, log logging.Logger) UserService {
	return &userService{recs: recs, log: log}
}

func (in Registration) validate() (bloodtype.Type, error) {
	if common.Blank(in.Name) || common.Blank(in.Email) || common.Blank(in.Phone) ||
		in.Password == "" || in.ConfirmPassword == "" ||
		common.Blank(in.BloodType) || common.Blank(in.Location) {
		return "", fmt.Errorf("%w: please fill in all fields", common.ErrValidation)
	}
	if strings.Contains(in.Email, ThreadSeparator) {
		return "", fmt.Errorf("%w: email may not contain %q", common.ErrValidation, ThreadSeparator)
	}
	if in.Password != in.ConfirmPassword {
		return "", fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	if len(in.Password) < MinPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters long", common.ErrValidation, MinPasswordLen)
	}
	return bloodtype.Parse(in.BloodType)
}

func (s *userService) RegisterDonor(ctx context.Context, in Registration) (models.User, error) {
	return s.register(ctx, models.RoleDonor, in)
}

func (s *userService) RegisterRecipient(ctx context.Context, in Registration) (models.User, error) {
	return s.register(ctx, models.RoleRecipient, in)
}

// register appends a new user to role's collection. Donors start available.
// The email must be new to that collection only.
func (s *userService) register(ctx context.Context, role models.Role, in Registration) (models.User, error) {
	bt, err := in.validate()
	if err != nil {
		return models.User{}, err
	}

	salt, verifier := cryptox.NewVerifier([]byte(in.Password))
	user := models.User{
		Email:        strings.TrimSpace(in.Email),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		BloodType:    bt,
		Location:     strings.TrimSpace(in.Location),
		Role:         role,
		Available:    role == models.RoleDonor,
		RegisteredAt: now().UTC(),
		Salt:         salt,
		Verifier:     verifier,
	}

	err = s.recs.UpdateUsers(ctx, role, func(users *[]models.User) error {
		for _, u := range *users {
			if u.Email == user.Email {
				return common.ErrAlreadyRegistered
			}
		}
		*users = append(*users, user)
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.log.Info(ctx, "registered", "email", user.Email, "role", role, "blood", bt)
	return user.Public(), nil
}

// SetAvailability writes the donor's flag through the store and refreshes
// the session copy from the written record.
func (s *userService) SetAvailability(ctx context.Context, sess *session.Session, available bool) (models.User, error) {
	me, err := sess.Require(models.RoleDonor)
	if err != nil {
		return models.User{}, err
	}

	var updated models.User
	err = s.recs.UpdateUsers(ctx, models.RoleDonor, func(users *[]models.User) error {
		for i := range *users {
			if (*users)[i].Email == me.Email {
				(*users)[i].Available = available
				updated = (*users)[i]
				return nil
			}
		}
		return fmt.Errorf("%w: donor %s", common.ErrNotFound, me.Email)
	})
	if err != nil {
		return models.User{}, err
	}

	updated.Role = models.RoleDonor
	sess.Set(updated)
	s.log.Info(ctx, "availability changed", "email", me.Email, "available", available)
	return updated.Public(), nil
}

// Peers lists the users the current user can talk to: the opposite role, or
// everyone for admin. The current user is never included.
func (s *userService) Peers(ctx context.Context, sess *session.Session) ([]models.User, error) {
	me, err := sess.Require()
	if err != nil {
		return nil, err
	}

	var roles []models.Role
	if me.Role == models.RoleAdmin {
		roles = []models.Role{models.RoleDonor, models.RoleRecipient}
	} else {
		roles = []models.Role{me.Role.Opposite()}
	}

	peers := []models.User{}
	for _, role := range roles {
		users, err := s.recs.Users(ctx, role)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.Email == me.Email {
				continue
			}
			peers = append(peers, u.Public())
		}
	}
	return peers, nil
}

// SearchPeers filters Peers by name, email, blood type or location,
// ignoring case. A blank query returns every peer.
func (s *userService) SearchPeers(ctx context.Context, sess *session.Session, query string) ([]models.User, error) {
	peers, err := s.Peers(ctx, sess)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return peers, nil
	}
	out := []models.User{}
	for _, p := range peers {
		if containsFold(p.Name, query) || containsFold(p.Email, query) ||
			containsFold(string(p.BloodType), query) || containsFold(p.Location, query) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Profile re-reads the current user's record. The session copy may be stale.
func (s *userService) Profile(ctx context.Context, sess *session.Session) (models.User, error) {
	me, err := sess.Require()
	if err != nil {
		return models.User{}, err
	}
	if me.Role == models.RoleAdmin {
		return me, nil
	}

	u, ok, err := s.recs.FindUser(ctx, me.Role, me.Email)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, fmt.Errorf("%w: %s", common.ErrNotFound, me.Email)
	}
	return u.Public(), nil
}

// Contact returns the record of a peer so the caller can reach them by phone.
func (s *userService) Contact(ctx context.Context, sess *session.Session, peerID string) (models.User, error) {
	peers, err := s.Peers(ctx, sess)
	if err != nil {
		return models.User{}, err
	}
	peerID = strings.TrimSpace(peerID)
	for _, p := range peers {
		if p.Email == peerID {
			if common.Blank(p.Phone) {
				return models.User{}, fmt.Errorf("%w: no phone number for %s", common.ErrNotFound, peerID)
			}
			return p, nil
		}
	}
	return models.User{}, fmt.Errorf("%w: %s", common.ErrNotFound, peerID)
}
