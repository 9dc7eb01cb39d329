package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
)

// Availability toggles whether the donor shows up in searches.
//
//	available on|off
func (a *App) Availability(ctx context.Context, args []string) error {
	if _, err := a.sess.Require(models.RoleDonor); err != nil {
		return err
	}
	s, err := a.argOr(args, 0, "Available for donation? (on/off)")
	if err != nil {
		return err
	}

	var on bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y", "true":
		on = true
	case "off", "no", "n", "false":
		on = false
	default:
		return fmt.Errorf("%w: expected on or off, got %q", common.ErrValidation, s)
	}

	u, err := a.svc.Users.SetAvailability(ctx, a.sess, on)
	if err != nil {
		return err
	}
	if u.Available {
		fmt.Fprintln(a.out, "You are now available for donation.")
	} else {
		fmt.Fprintln(a.out, "You are now unavailable for donation.")
	}
	return nil
}

// Requests lists incoming requests for a donor or sent requests for a
// recipient.
func (a *App) Requests(ctx context.Context, _ []string) error {
	me, err := a.sess.Require(models.RoleDonor, models.RoleRecipient)
	if err != nil {
		return err
	}

	var reqs []models.BloodRequest
	if me.Role == models.RoleDonor {
		reqs, err = a.svc.Requests.RequestsFor(ctx, me.Email)
	} else {
		reqs, err = a.svc.Requests.RequestsFrom(ctx, me.Email)
	}
	if err != nil {
		return err
	}
	renderRequests(a.out, reqs, me.Role)
	return nil
}

// findOwnRequest resolves id, or a unique prefix of it, among the requests
// addressed to donorID.
func (a *App) findOwnRequest(ctx context.Context, donorID, id string) (models.BloodRequest, error) {
	reqs, err := a.svc.Requests.RequestsFor(ctx, donorID)
	if err != nil {
		return models.BloodRequest{}, err
	}

	var matches []models.BloodRequest
	for _, r := range reqs {
		if r.ID == id {
			return r, nil
		}
		if strings.HasPrefix(r.ID, id) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return models.BloodRequest{}, fmt.Errorf("%w: request %s", common.ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return models.BloodRequest{}, fmt.Errorf("%w: request id %q is ambiguous", common.ErrValidation, id)
	}
}

// Respond accepts or declines a pending request addressed to the donor.
//
//	respond <id> accept|decline
func (a *App) Respond(ctx context.Context, args []string) error {
	me, err := a.sess.Require(models.RoleDonor)
	if err != nil {
		return err
	}
	id, err := a.argOr(args, 0, "Request ID")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: request id is required", common.ErrValidation)
	}
	d, err := a.argOr(args, 1, "Decision (accept/decline)")
	if err != nil {
		return err
	}

	req, err := a.findOwnRequest(ctx, me.Email, id)
	if err != nil {
		return err
	}
	decision := models.RequestStatus(strings.ToLower(strings.TrimSpace(d)))
	out, err := a.svc.Requests.Respond(ctx, req.ID, decision)
	if err != nil {
		return err
	}

	if out.Status == models.StatusAccept {
		fmt.Fprintf(a.out, "Request from %s accepted. Phone: %s\n", out.FromName, a.phoneOf(ctx, out.FromID))
	} else {
		fmt.Fprintf(a.out, "Request from %s declined.\n", out.FromName)
	}
	return nil
}

// phoneOf looks up a recipient's phone number for the accept message.
func (a *App) phoneOf(ctx context.Context, recipientID string) string {
	u, err := a.svc.Users.Contact(ctx, a.sess, recipientID)
	if err != nil {
		a.log.Debug(ctx, "contact lookup failed", "email", recipientID, "error", err)
		return "unknown"
	}
	return u.Phone
}
