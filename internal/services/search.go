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
	"golang.org/x/text/cases"
)

// SearchService finds donors for a recipient.
type SearchService interface {
	SearchDonors(ctx context.Context, recipient models.User, locationQuery string) ([]models.User, error)
}

type searchService struct {
	recs *records.Records
	log  logging.Logger
}

// NewSearchService constructs a SearchService over the donors collection.
func NewSearchService(recs *records.Records, log logging.Logger) SearchService {
	return &searchService{recs: recs, log: log}
}

// fold normalises s for caseless comparison.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFold reports whether s contains substr ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(fold(s), fold(substr))
}

// SearchDonors returns available donors whose location contains
// locationQuery (caseless) and whose blood type recipient can receive.
// Store order is kept. The recipient is never in the result.
func (s *searchService) SearchDonors(ctx context.Context, recipient models.User, locationQuery string) ([]models.User, error) {
	query := strings.TrimSpace(locationQuery)
	if query == "" {
		return nil, fmt.Errorf("%w: please enter a location to search", common.ErrValidation)
	}

	donors, err := s.recs.Users(ctx, models.RoleDonor)
	if err != nil {
		return nil, err
	}

	found := []models.User{}
	for _, d := range donors {
		if d.Email == recipient.Email {
			continue
		}
		if d.Available &&
			containsFold(d.Location, query) &&
			bloodtype.IsCompatible(recipient.BloodType, d.BloodType) {
			found = append(found, d.Public())
		}
	}

	s.log.Debug(ctx, "donor search", "recipient", recipient.Email, "location", query, "matches", len(found))
	return found, nil
}
