package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
)

// DefaultRequestMessage is used when the recipient leaves the message empty.
const DefaultRequestMessage = "Urgent blood donation needed"

// CreateRequestInput names the donor and recipient by identity. BloodType
// and Location default to the donor's when empty.
type CreateRequestInput struct {
	DonorID     string
	RecipientID string
	BloodType   string
	Location    string
	Message     string
}

// RequestService drives the pending -> accept|decline lifecycle.
type RequestService interface {
	Create(ctx context.Context, in CreateRequestInput) (models.BloodRequest, error)
	Respond(ctx context.Context, id string, decision models.RequestStatus) (models.BloodRequest, error)
	RequestsFor(ctx context.Context, donorID string) ([]models.BloodRequest, error)
	RequestsFrom(ctx context.Context, recipientID string) ([]models.BloodRequest, error)
}

type requestService struct {
	recs *records.Records
	log  logging.Logger
}

// NewRequestService constructs a RequestService over the requests collection.
func NewRequestService(recs *records.Records, log logging.Logger) RequestService {
	return &requestService{recs: recs, log: log}
}

func (s *requestService) lookup(ctx context.Context, role models.Role, id string) (models.User, error) {
	u, ok, err := s.recs.FindUser(ctx, role, id)
	if err != nil {
		return models.User{}, err
	}
	if !ok {
		return models.User{}, fmt.Errorf("%w: %s %q", common.ErrNotFound, role, id)
	}
	return u, nil
}

func (s *requestService) Create(ctx context.Context, in CreateRequestInput) (models.BloodRequest, error) {
	if common.Blank(in.DonorID) || common.Blank(in.RecipientID) {
		return models.BloodRequest{}, fmt.Errorf("%w: donor and recipient are required", common.ErrValidation)
	}

	donor, err := s.lookup(ctx, models.RoleDonor, strings.TrimSpace(in.DonorID))
	if err != nil {
		return models.BloodRequest{}, err
	}
	recipient, err := s.lookup(ctx, models.RoleRecipient, strings.TrimSpace(in.RecipientID))
	if err != nil {
		return models.BloodRequest{}, err
	}

	bt := donor.BloodType
	if !common.Blank(in.BloodType) {
		if bt, err = bloodtype.Parse(in.BloodType); err != nil {
			return models.BloodRequest{}, err
		}
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = donor.Location
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		message = DefaultRequestMessage
	}

	req := models.BloodRequest{
		ID:        newID(),
		FromID:    recipient.Email,
		FromName:  recipient.Name,
		ToID:      donor.Email,
		ToName:    donor.Name,
		BloodType: bt,
		Location:  location,
		Message:   message,
		CreatedAt: now().UTC(),
		Status:    models.StatusPending,
	}

	err = s.recs.UpdateRequests(ctx, func(reqs *[]models.BloodRequest) error {
		*reqs = append(*reqs, req)
		return nil
	})
	if err != nil {
		return models.BloodRequest{}, err
	}

	s.log.Info(ctx, "request created", "id", req.ID, "from", req.FromID, "to", req.ToID)
	return req, nil
}

// Respond resolves a pending request. Resolved requests are never changed
// again.
func (s *requestService) Respond(ctx context.Context, id string, decision models.RequestStatus) (models.BloodRequest, error) {
	if decision != models.StatusAccept && decision != models.StatusDecline {
		return models.BloodRequest{}, fmt.Errorf("%w: decision must be accept or decline, got %q", common.ErrValidation, decision)
	}

	var out models.BloodRequest
	err := s.recs.UpdateRequests(ctx, func(reqs *[]models.BloodRequest) error {
		for i := range *reqs {
			r := &(*reqs)[i]
			if r.ID != id {
				continue
			}
			if r.Resolved() {
				return fmt.Errorf("%w: request %s is already %s", common.ErrInvalidTransition, id, r.Status)
			}
			t := now().UTC()
			r.Status = decision
			r.RespondedAt = &t
			out = *r
			return nil
		}
		return fmt.Errorf("%w: request %s", common.ErrNotFound, id)
	})
	if err != nil {
		return models.BloodRequest{}, err
	}

	s.log.Info(ctx, "request answered", "id", id, "status", decision)
	return out, nil
}

// RequestsFor lists requests addressed to donorID in creation order.
func (s *requestService) RequestsFor(ctx context.Context, donorID string) ([]models.BloodRequest, error) {
	return s.filter(ctx, func(r models.BloodRequest) bool { return r.ToID == donorID })
}

// RequestsFrom lists requests sent by recipientID in creation order.
func (s *requestService) RequestsFrom(ctx context.Context, recipientID string) ([]models.BloodRequest, error) {
	return s.filter(ctx, func(r models.BloodRequest) bool { return r.FromID == recipientID })
}

func (s *requestService) filter(ctx context.Context, keep func(models.BloodRequest) bool) ([]models.BloodRequest, error) {
	reqs, err := s.recs.Requests(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.BloodRequest{}
	for _, r := range reqs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
