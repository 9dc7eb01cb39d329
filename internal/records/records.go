// Package records stores the RapidBlood collections as JSON documents in a
// kvstore.Store, one key per collection.
package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/kvstore"
	"github.com/dmitrijs2005/rapidblood/internal/models"
)

// Store keys.
const (
	KeyDonors       = "donors"
	KeyRecipients   = "recipients"
	KeyRequests     = "requests"
	KeyChatMessages = "chatMessages"
	KeyCurrentUser  = "currentUser"
)

// Keys lists every key the application writes.
var Keys = []string{KeyDonors, KeyRecipients, KeyRequests, KeyChatMessages, KeyCurrentUser}

// Threads maps a thread id to its messages in append order.
type Threads map[string][]models.Message

// Records reads and writes the JSON collections kept in a kvstore.Store.
type Records struct {
	store kvstore.Store
}

// New wraps store.
func New(store kvstore.Store) *Records {
	return &Records{store: store}
}

// CollectionKey returns the store key holding users of role.
func CollectionKey(role models.Role) (string, error) {
	switch role {
	case models.RoleDonor:
		return KeyDonors, nil
	case models.RoleRecipient:
		return KeyRecipients, nil
	}
	return "", fmt.Errorf("%w: no collection for role %q", common.ErrValidation, role)
}

func load[T any](ctx context.Context, s kvstore.Store, key string, v *T) error {
	b, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func update[T any](ctx context.Context, s kvstore.Store, key string, fn func(*T) error) error {
	return s.Update(ctx, key, func(cur []byte) ([]byte, error) {
		var v T
		if len(cur) > 0 {
			if err := json.Unmarshal(cur, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
}

// Users returns the collection for role in store order. Each user's Role is
// set from the collection it came from.
func (r *Records) Users(ctx context.Context, role models.Role) ([]models.User, error) {
	key, err := CollectionKey(role)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := load(ctx, r.store, key, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Role = role
	}
	return users, nil
}

// FindUser looks up email in role's collection. ok is false when absent.
func (r *Records) FindUser(ctx context.Context, role models.Role, email string) (models.User, bool, error) {
	users, err := r.Users(ctx, role)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// UpdateUsers rewrites role's collection with fn. Returning an error from fn
// leaves the store untouched.
func (r *Records) UpdateUsers(ctx context.Context, role models.Role, fn func(users *[]models.User) error) error {
	key, err := CollectionKey(role)
	if err != nil {
		return err
	}
	return update(ctx, r.store, key, fn)
}

// Requests returns every blood request in creation order.
func (r *Records) Requests(ctx context.Context) ([]models.BloodRequest, error) {
	var reqs []models.BloodRequest
	if err := load(ctx, r.store, KeyRequests, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateRequests applies fn to the request list and writes it back.
func (r *Records) UpdateRequests(ctx context.Context, fn func(reqs *[]models.BloodRequest) error) error {
	return update(ctx, r.store, KeyRequests, fn)
}

// Threads returns every chat thread keyed by thread id.
func (r *Records) Threads(ctx context.Context) (Threads, error) {
	threads := Threads{}
	if err := load(ctx, r.store, KeyChatMessages, &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// UpdateThreads applies fn to the thread map and writes it back.
func (r *Records) UpdateThreads(ctx context.Context, fn func(threads Threads) error) error {
	return update(ctx, r.store, KeyChatMessages, func(t *Threads) error {
		if *t == nil {
			*t = Threads{}
		}
		return fn(*t)
	})
}

// SessionToken returns the persisted session token, or "" if none.
func (r *Records) SessionToken(ctx context.Context) (string, error) {
	b, err := r.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SetSessionToken persists token under the currentUser key.
func (r *Records) SetSessionToken(ctx context.Context, token string) error {
	return r.store.Set(ctx, KeyCurrentUser, []byte(token))
}

// ClearSessionToken forgets the persisted session.
func (r *Records) ClearSessionToken(ctx context.Context) error {
	return r.store.Delete(ctx, KeyCurrentUser)
}

// Reset deletes every application key.
func (r *Records) Reset(ctx context.Context) error {
	for _, k := range Keys {
		if err := r.store.Delete(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
