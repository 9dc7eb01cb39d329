package services

import (
	"time"

	"github.com/dmitrijs2005/rapidblood/internal/config"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/google/uuid"
)

// now is a seam for tests.
var now = time.Now

// newID returns a time-ordered UUIDv7, falling back to a random UUID if the
// v7 generator fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Services bundles every service over one record set.
type Services struct {
	Auth     AuthService
	Users    UserService
	Search   SearchService
	Requests RequestService
	Chat     ChatService
	Admin    AdminService
}

// New wires all services to recs using cfg for the admin credential and
// session token settings.
func New(recs *records.Records, cfg *config.Config, log logging.Logger) *Services {
	users := NewUserService(recs, log.With("service", "users"))
	return &Services{
		Auth: NewAuthService(recs, AuthConfig{
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
			SessionSecret: []byte(cfg.SessionSecret),
			SessionTTL:    cfg.SessionTTL,
		}, log.With("service", "auth")),
		Users:    users,
		Search:   NewSearchService(recs, log.With("service", "search")),
		Requests: NewRequestService(recs, log.With("service", "requests")),
		Chat:     NewChatService(recs, log.With("service", "chat")),
		Admin:    NewAdminService(recs, users, log.With("service", "admin")),
	}
}
