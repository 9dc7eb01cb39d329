package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/models"
)

func (a *App) Stats(ctx context.Context, _ []string) error {
	if _, err := a.sess.Require(models.RoleAdmin); err != nil {
		return err
	}
	st, err := a.svc.Admin.Stats(ctx)
	if err != nil {
		return err
	}
	renderStats(a.out, st)
	return nil
}

// Seed loads donors and recipients from a YAML file.
//
//	seed <file.yaml>
func (a *App) Seed(ctx context.Context, args []string) error {
	if _, err := a.sess.Require(models.RoleAdmin); err != nil {
		return err
	}
	path, err := a.argOr(args, 0, "Seed file")
	if err != nil {
		return err
	}

	f, err := os.Open(strings.TrimSpace(path))
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	res, err := a.svc.Admin.Seed(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Seeded %d donors and %d recipients.\n", res.Donors, res.Recipients)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(a.out, "Skipped (already registered): %s\n", strings.Join(res.Skipped, ", "))
	}
	return nil
}

// Reset deletes every record after a confirmation. The admin stays logged
// in for this run only.
func (a *App) Reset(ctx context.Context, _ []string) error {
	if _, err := a.sess.Require(models.RoleAdmin); err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "This deletes all donors, recipients, requests and chats. Type 'yes' to continue", a.out)
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		fmt.Fprintln(a.out, "Reset cancelled.")
		return nil
	}
	if err := a.svc.Admin.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All data deleted.")
	return nil
}
