package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"gopkg.in/yaml.v3"
)

// Stats is the admin dashboard snapshot.
type Stats struct {
	Donors          int
	AvailableDonors int
	Recipients      int

	Requests         int
	PendingRequests  int
	AcceptedRequests int
	DeclinedRequests int

	Threads  int
	Messages int

	DonorBloodTypes     map[bloodtype.Type]int
	RecipientBloodTypes map[bloodtype.Type]int
}

// SeedResult reports what Seed did.
type SeedResult struct {
	Donors     int
	Recipients int
	Skipped    []string
}

// AdminService covers the admin dashboard.
type AdminService interface {
	Stats(ctx context.Context) (Stats, error)
	Reset(ctx context.Context) error
	Seed(ctx context.Context, r io.Reader) (SeedResult, error)
}

type adminService struct {
	recs  *records.Records
	users UserService
	log   logging.Logger
}

// NewAdminService constructs an AdminService that seeds through users.
func NewAdminService(recs *records.Records, users UserService, log logging.Logger) AdminService {
	return &adminService{recs: recs, users: users, log: log}
}

func countBloodTypes(users []models.User) map[bloodtype.Type]int {
	m := make(map[bloodtype.Type]int, 8)
	for _, t := range bloodtype.All() {
		m[t] = 0
	}
	for _, u := range users {
		m[u.BloodType]++
	}
	return m
}

func (s *adminService) Stats(ctx context.Context) (Stats, error) {
	donors, err := s.recs.Users(ctx, models.RoleDonor)
	if err != nil {
		return Stats{}, err
	}
	recipients, err := s.recs.Users(ctx, models.RoleRecipient)
	if err != nil {
		return Stats{}, err
	}
	reqs, err := s.recs.Requests(ctx)
	if err != nil {
		return Stats{}, err
	}
	threads, err := s.recs.Threads(ctx)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{
		Donors:              len(donors),
		Recipients:          len(recipients),
		Requests:            len(reqs),
		DonorBloodTypes:     countBloodTypes(donors),
		RecipientBloodTypes: countBloodTypes(recipients),
	}
	for _, d := range donors {
		if d.Available {
			st.AvailableDonors++
		}
	}
	for _, r := range reqs {
		switch r.Status {
		case models.StatusPending:
			st.PendingRequests++
		case models.StatusAccept:
			st.AcceptedRequests++
		case models.StatusDecline:
			st.DeclinedRequests++
		}
	}
	for _, msgs := range threads {
		if len(msgs) > 0 {
			st.Threads++
			st.Messages += len(msgs)
		}
	}
	return st, nil
}

// Reset removes every collection and the saved session.
func (s *adminService) Reset(ctx context.Context) error {
	if err := s.recs.Reset(ctx); err != nil {
		return err
	}
	s.log.Warn(ctx, "all records deleted")
	return nil
}

type seedUser struct {
	Registration `yaml:",inline"`
	Available    *bool `yaml:"available"`
}

type seedFile struct {
	Donors     []seedUser `yaml:"donors"`
	Recipients []seedUser `yaml:"recipients"`
}

// Seed registers the donors and recipients listed in a YAML document. Every
// entry goes through normal registration; entries whose email already exists
// are skipped. "confirm" defaults to "password".
func (s *adminService) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return SeedResult{}, fmt.Errorf("%w: seed file: %v", common.ErrValidation, err)
	}

	var res SeedResult
	for _, d := range f.Donors {
		ok, err := s.seedOne(ctx, models.RoleDonor, d)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Skipped = append(res.Skipped, d.Email)
			continue
		}
		res.Donors++
	}
	for _, rc := range f.Recipients {
		ok, err := s.seedOne(ctx, models.RoleRecipient, rc)
		if err != nil {
			return res, err
		}
		if !ok {
			res.Skipped = append(res.Skipped, rc.Email)
			continue
		}
		res.Recipients++
	}

	s.log.Info(ctx, "seeded", "donors", res.Donors, "recipients", res.Recipients, "skipped", len(res.Skipped))
	return res, nil
}

func (s *adminService) seedOne(ctx context.Context, role models.Role, su seedUser) (bool, error) {
	reg := su.Registration
	if reg.ConfirmPassword == "" {
		reg.ConfirmPassword = reg.Password
	}

	register := s.users.RegisterRecipient
	if role == models.RoleDonor {
		register = s.users.RegisterDonor
	}
	u, err := register(ctx, reg)
	if errors.Is(err, common.ErrAlreadyRegistered) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed %s %q: %w", role, reg.Email, err)
	}

	if role == models.RoleDonor && su.Available != nil && !*su.Available {
		err := s.recs.UpdateUsers(ctx, models.RoleDonor, func(users *[]models.User) error {
			for i := range *users {
				if (*users)[i].Email == u.Email {
					(*users)[i].Available = false
				}
			}
			return nil
		})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}
