package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/services"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
}

func TestRenderStats_Golden(t *testing.T) {
	st := services.Stats{
		Donors:           3,
		AvailableDonors:  2,
		Recipients:       2,
		Requests:         3,
		PendingRequests:  1,
		AcceptedRequests: 1,
		DeclinedRequests: 1,
		Threads:          1,
		Messages:         4,

		DonorBloodTypes:     map[bloodtype.Type]int{bloodtype.APos: 1, bloodtype.ONeg: 2},
		RecipientBloodTypes: map[bloodtype.Type]int{bloodtype.APos: 1, bloodtype.ABPos: 1},
	}

	var buf bytes.Buffer
	renderStats(&buf, st)
	newGoldie(t).Assert(t, "stats", buf.Bytes())
}

func TestRenderRequests_Golden(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	reqs := []models.BloodRequest{
		{
			ID: "r-1", FromID: "rafiq@example.com", FromName: "Rafiq", ToID: "ayesha@example.com", ToName: "Ayesha",
			BloodType: bloodtype.ONeg, Location: "Dhaka", Message: "Urgent blood donation needed",
			CreatedAt: created, Status: models.StatusPending,
		},
		{
			ID: "r-22", FromID: "nusrat@example.com", FromName: "Nusrat Jahan", ToID: "ayesha@example.com", ToName: "Ayesha",
			BloodType: bloodtype.ONeg, Location: "Dhaka North", Message: "Surgery tomorrow",
			CreatedAt: created.Add(90 * time.Minute), Status: models.StatusAccept,
		},
	}

	var buf bytes.Buffer
	renderRequests(&buf, reqs, models.RoleDonor)
	newGoldie(t).Assert(t, "requests_donor", buf.Bytes())
}

func TestRenderEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	renderDonors(&buf, nil)
	renderPeers(&buf, nil)
	renderRequests(&buf, nil, models.RoleRecipient)
	renderThreads(&buf, "me@example.com", nil)
	renderConversation(&buf, "me@example.com", nil)
	assert.Equal(t, "No compatible donors found.\nNo users found.\nNo blood requests.\nNo conversations.\nNo messages yet.\n", buf.String())
}
