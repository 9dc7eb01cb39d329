package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/config"
	"github.com/dmitrijs2005/rapidblood/internal/kvstore"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/dmitrijs2005/rapidblood/internal/session"
	"github.com/stretchr/testify/require"
)

// testClock replaces the package clock for one test.
type testClock struct {
	t time.Time
}

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func useClock(t *testing.T) *testClock {
	t.Helper()
	c := &testClock{t: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	orig := now
	now = func() time.Time { return c.t }
	t.Cleanup(func() { now = orig })
	return c
}

type fixture struct {
	svc   *Services
	recs  *records.Records
	store *kvstore.Memory
	clock *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	store := kvstore.NewMemory()
	recs := records.New(store)
	return &fixture{
		svc:   New(recs, cfg, logging.Discard()),
		recs:  recs,
		store: store,
		clock: useClock(t),
	}
}

func reg(name, email, blood, location string) Registration {
	return Registration{
		Name:            name,
		Email:           email,
		Phone:           "+880-1700-000000",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		BloodType:       blood,
		Location:        location,
	}
}

func (f *fixture) donor(t *testing.T, name, email, blood, location string) models.User {
	t.Helper()
	u, err := f.svc.Users.RegisterDonor(context.Background(), reg(name, email, blood, location))
	require.NoError(t, err)
	return u
}

func (f *fixture) recipient(t *testing.T, name, email, blood, location string) models.User {
	t.Helper()
	u, err := f.svc.Users.RegisterRecipient(context.Background(), reg(name, email, blood, location))
	require.NoError(t, err)
	return u
}

func (f *fixture) login(t *testing.T, email string, role models.Role) *session.Session {
	t.Helper()
	sess := session.New()
	secret := "secret1"
	if role == models.RoleAdmin {
		secret = "admin123"
	}
	_, err := f.svc.Auth.Login(context.Background(), sess, email, secret, role)
	require.NoError(t, err)
	return sess
}
