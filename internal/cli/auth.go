package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/services"
)

// parseRoleArg reads an optional role argument, asking when it is missing.
func (a *App) parseRoleArg(args []string, prompt string, allowAdmin bool) (models.Role, error) {
	s, err := a.argOr(args, 0, prompt)
	if err != nil {
		return "", err
	}
	role, err := models.ParseRole(s)
	if err != nil {
		return "", err
	}
	if role == models.RoleAdmin && !allowAdmin {
		return "", fmt.Errorf("%w: cannot register as admin", common.ErrValidation)
	}
	return role, nil
}

// Register signs up a donor or recipient and logs them in.
//
//	register [donor|recipient]
func (a *App) Register(ctx context.Context, args []string) error {
	if _, ok := a.sess.Current(); ok {
		return fmt.Errorf("%w: log out first", common.ErrValidation)
	}

	role, err := a.parseRoleArg(args, "Register as (donor/recipient)", false)
	if err != nil {
		return err
	}

	var in services.Registration
	fields := []struct {
		dst    *string
		prompt string
	}{
		{&in.Name, "Full name"},
		{&in.Email, "Email"},
		{&in.Phone, "Phone"},
		{&in.BloodType, "Blood type (A+, A-, B+, B-, AB+, AB-, O+, O-)"},
		{&in.Location, "Location"},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	pw, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	in.Password, in.ConfirmPassword = string(pw), string(confirm)

	if role == models.RoleDonor {
		_, err = a.svc.Users.RegisterDonor(ctx, in)
	} else {
		_, err = a.svc.Users.RegisterRecipient(ctx, in)
	}
	if err != nil {
		return err
	}

	u, err := a.svc.Auth.Login(ctx, a.sess, in.Email, in.Password, role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered as %s. Welcome, %s!\n", role, u.Name)
	return nil
}

// Login authenticates against one role's collection.
//
//	login [donor|recipient|admin] [email]
func (a *App) Login(ctx context.Context, args []string) error {
	if _, ok := a.sess.Current(); ok {
		return fmt.Errorf("%w: already logged in", common.ErrValidation)
	}

	role, err := a.parseRoleArg(args, "Log in as (donor/recipient/admin)", true)
	if err != nil {
		return err
	}
	email, err := a.argOr(args, 1, "Email")
	if err != nil {
		return err
	}
	pw, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	u, err := a.svc.Auth.Login(ctx, a.sess, strings.TrimSpace(email), string(pw), role)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login successful. Welcome, %s!\n", u.Name)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if _, err := a.sess.Require(); err != nil {
		return err
	}
	if err := a.svc.Auth.Logout(ctx, a.sess); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Profile(ctx context.Context, _ []string) error {
	u, err := a.svc.Users.Profile(ctx, a.sess)
	if err != nil {
		return err
	}
	renderProfile(a.out, u)
	return nil
}
