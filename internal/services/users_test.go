package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(r *Registration)
	}{
		{name: "missing name", mutate: func(r *Registration) { r.Name = "" }},
		{name: "blank email", mutate: func(r *Registration) { r.Email = "   " }},
		{name: "missing phone", mutate: func(r *Registration) { r.Phone = "" }},
		{name: "missing confirm", mutate: func(r *Registration) { r.ConfirmPassword = "" }},
		{name: "missing location", mutate: func(r *Registration) { r.Location = "" }},
		{name: "mismatch", mutate: func(r *Registration) { r.ConfirmPassword = "secret2" }},
		{name: "too short", mutate: func(r *Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }},
		{name: "bad blood type", mutate: func(r *Registration) { r.BloodType = "Q+" }},
		{name: "thread separator in email", mutate: func(r *Registration) { r.Email = "a|b@example.com" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := reg("Alice", "alice@example.com", "O-", "Dhaka")
			tt.mutate(&in)
			_, err := f.svc.Users.RegisterDonor(ctx, in)
			require.ErrorIs(t, err, common.ErrValidation)
		})
	}

	donors, err := f.recs.Users(ctx, models.RoleDonor)
	require.NoError(t, err)
	assert.Empty(t, donors)
}

func TestRegister_Defaults(t *testing.T) {
	f := newFixture(t)

	d := f.donor(t, " Alice ", "alice@example.com", "o-", "Dhaka")
	assert.Equal(t, "Alice", d.Name)
	assert.Equal(t, bloodtype.ONeg, d.BloodType)
	assert.True(t, d.Available)
	assert.Equal(t, f.clock.t, d.RegisteredAt)
	assert.Nil(t, d.Verifier)

	r := f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")
	assert.False(t, r.Available)
	assert.Equal(t, models.RoleRecipient, r.Role)

	stored, ok, err := f.recs.FindUser(context.Background(), models.RoleDonor, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, stored.Salt)
	assert.NotEmpty(t, stored.Verifier)
}

func TestRegister_DuplicatePerCollection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")

	_, err := f.svc.Users.RegisterDonor(ctx, reg("Alice 2", "alice@example.com", "A+", "Sylhet"))
	require.ErrorIs(t, err, common.ErrAlreadyRegistered)
	require.ErrorIs(t, err, common.ErrAuth)

	_, err = f.svc.Users.RegisterRecipient(ctx, reg("Alice", "alice@example.com", "O-", "Dhaka"))
	require.NoError(t, err)

	donors, err := f.recs.Users(ctx, models.RoleDonor)
	require.NoError(t, err)
	assert.Len(t, donors, 1)
}

func TestSetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")

	sess := f.login(t, "alice@example.com", models.RoleDonor)
	u, err := f.svc.Users.SetAvailability(ctx, sess, false)
	require.NoError(t, err)
	assert.False(t, u.Available)

	cur, _ := sess.Current()
	assert.False(t, cur.Available)

	stored, _, err := f.recs.FindUser(ctx, models.RoleDonor, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.Available)
	assert.NotEmpty(t, stored.Verifier)

	bob := f.login(t, "bob@example.com", models.RoleRecipient)
	_, err = f.svc.Users.SetAvailability(ctx, bob, true)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = f.svc.Users.SetAvailability(ctx, session.New(), true)
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func emails(users []models.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email)
	}
	return out
}

func TestPeers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	f.donor(t, "Carol", "carol@example.com", "B+", "Sylhet")
	f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")
	f.recipient(t, "Alice", "alice@example.com", "O-", "Dhaka")

	alice := f.login(t, "alice@example.com", models.RoleDonor)
	peers, err := f.svc.Users.Peers(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@example.com"}, emails(peers))

	bob := f.login(t, "bob@example.com", models.RoleRecipient)
	peers, err = f.svc.Users.Peers(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "carol@example.com"}, emails(peers))

	admin := f.login(t, "admin@rapidblood.com", models.RoleAdmin)
	peers, err = f.svc.Users.Peers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, peers, 4)

	_, err = f.svc.Users.Peers(ctx, session.New())
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSearchPeers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	f.donor(t, "Carol", "carol@example.com", "B+", "Sylhet")
	f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")

	bob := f.login(t, "bob@example.com", models.RoleRecipient)

	got, err := f.svc.Users.SearchPeers(ctx, bob, "SYL")
	require.NoError(t, err)
	assert.Equal(t, []string{"carol@example.com"}, emails(got))

	got, err = f.svc.Users.SearchPeers(ctx, bob, "o-")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com"}, emails(got))

	got, err = f.svc.Users.SearchPeers(ctx, bob, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProfileAndContact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.donor(t, "Alice", "alice@example.com", "O-", "Dhaka")
	f.recipient(t, "Bob", "bob@example.com", "A+", "Dhaka")

	alice := f.login(t, "alice@example.com", models.RoleDonor)

	p, err := f.svc.Users.Profile(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Nil(t, p.Salt)

	c, err := f.svc.Users.Contact(ctx, alice, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "+880-1700-000000", c.Phone)

	_, err = f.svc.Users.Contact(ctx, alice, "nobody@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)

	admin := f.login(t, "admin@rapidblood.com", models.RoleAdmin)
	p, err = f.svc.Users.Profile(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, p.Role)
}
