package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/services"
)

// Search lists available compatible donors at a location.
//
//	search <location>
func (a *App) Search(ctx context.Context, args []string) error {
	me, err := a.sess.Require(models.RoleRecipient)
	if err != nil {
		return err
	}
	q, err := a.restOr(args, 0, "Location")
	if err != nil {
		return err
	}

	donors, err := a.svc.Search.SearchDonors(ctx, me, q)
	if err != nil {
		return err
	}
	renderDonors(a.out, donors)
	return nil
}

// Request sends a blood request to a donor.
//
//	request <donor email> [message]
func (a *App) Request(ctx context.Context, args []string) error {
	me, err := a.sess.Require(models.RoleRecipient)
	if err != nil {
		return err
	}
	donorID, err := a.argOr(args, 0, "Donor email")
	if err != nil {
		return err
	}
	msg := ""
	if len(args) > 1 {
		msg = strings.Join(args[1:], " ")
	}

	req, err := a.svc.Requests.Create(ctx, services.CreateRequestInput{
		DonorID:     strings.TrimSpace(donorID),
		RecipientID: me.Email,
		Message:     msg,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Request sent to %s (id %s).\n", req.ToName, req.ID)
	return nil
}
