package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Donor(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	ctx := context.Background()

	sess := session.New()
	u, err := f.svc.Auth.Login(ctx, sess, "alice@example.com", "secret1", models.RoleDonor)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, models.RoleDonor, u.Role)
	assert.Nil(t, u.Verifier)

	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", cur.Email)
}

func TestLogin_Failures(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	ctx := context.Background()

	tests := []struct {
		name   string
		email  string
		secret string
		role   models.Role
	}{
		{name: "wrong password", email: "alice@example.com", secret: "nope123", role: models.RoleDonor},
		{name: "unknown email", email: "eve@example.com", secret: "secret1", role: models.RoleDonor},
		{name: "wrong collection", email: "alice@example.com", secret: "secret1", role: models.RoleRecipient},
		{name: "admin wrong password", email: "admin@rapidblood.com", secret: "secret1", role: models.RoleAdmin},
		{name: "admin wrong email", email: "root@rapidblood.com", secret: "admin123", role: models.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New()
			_, err := f.svc.Auth.Login(ctx, sess, tt.email, tt.secret, tt.role)
			require.ErrorIs(t, err, common.ErrInvalidCredentials)
			require.ErrorIs(t, err, common.ErrAuth)
			_, ok := sess.Current()
			assert.False(t, ok)
		})
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Login(context.Background(), session.New(), " ", "x", models.RoleDonor)
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = f.svc.Auth.Login(context.Background(), session.New(), "a@x", "secret1", "nurse")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestLogin_Admin(t *testing.T) {
	f := newFixture(t)
	sess := f.login(t, "admin@rapidblood.com", models.RoleAdmin)

	u, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "Admin", u.Name)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestResume_AfterRestart(t *testing.T) {
	f := newFixture(t)
	f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")
	ctx := context.Background()

	f.login(t, "bob@example.com", models.RoleRecipient)

	fresh := session.New()
	u, err := f.svc.Auth.Resume(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", u.Email)
	assert.Equal(t, models.RoleRecipient, u.Role)

	cur, ok := fresh.Current()
	require.True(t, ok)
	assert.Equal(t, "Bob", cur.Name)
}

func TestResume_Admin(t *testing.T) {
	f := newFixture(t)
	f.login(t, "admin@rapidblood.com", models.RoleAdmin)

	u, err := f.svc.Auth.Resume(context.Background(), session.New())
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}

func TestLogout_ClearsSavedSession(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	ctx := context.Background()

	sess := f.login(t, "alice@example.com", models.RoleDonor)
	require.NoError(t, f.svc.Auth.Logout(ctx, sess))

	_, ok := sess.Current()
	assert.False(t, ok)

	_, err := f.svc.Auth.Resume(ctx, session.New())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestResume_ExpiredTokenIsDiscarded(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	ctx := context.Background()

	f.login(t, "alice@example.com", models.RoleDonor)
	f.clock.Advance(25 * time.Hour)

	_, err := f.svc.Auth.Resume(ctx, session.New())
	require.ErrorIs(t, err, common.ErrUnauthorized)

	tok, err := f.recs.SessionToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestResume_UserGone(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	ctx := context.Background()

	f.login(t, "alice@example.com", models.RoleDonor)
	require.NoError(t, f.store.Delete(ctx, "donors"))

	_, err := f.svc.Auth.Resume(ctx, session.New())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}
