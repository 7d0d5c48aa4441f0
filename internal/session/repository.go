// AngelaMos | 2026
// repository.go

// Package session owns the per-client slots of the key-value store: the
// currentUser pointer that means "logged in" and the scratch record that
// lives only as long as the session.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
	"github.com/carterperez-dev/storefront/internal/user"
)

func CurrentUserKey(clientID string) string {
	return "client:" + clientID + ":currentUser"
}

func ScratchKey(clientID string) string {
	return "client:" + clientID + ":sessionScratch"
}

// Scratch is ephemeral per-session state cleared on logout.
type Scratch struct {
	ActiveSection string `json:"activeSection,omitempty"`
}

type Repository interface {
	// CurrentUser returns core.ErrNotFound when nobody is logged in and
	// core.ErrInvalidRecord when the stored pointer is unusable.
	CurrentUser(ctx context.Context, clientID string) (*user.User, error)
	SetCurrentUser(ctx context.Context, clientID string, u *user.User) error
	ClearCurrentUser(ctx context.Context, clientID string) error
	Scratch(ctx context.Context, clientID string) (Scratch, error)
	SaveScratch(ctx context.Context, clientID string, scratch Scratch) error
	ClearScratch(ctx context.Context, clientID string) error
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) CurrentUser(
	ctx context.Context,
	clientID string,
) (*user.User, error) {
	u, err := kvstore.GetJSON[user.User](ctx, r.store, CurrentUserKey(clientID))
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}

	if !u.HasID() {
		return nil, fmt.Errorf(
			"load current user: missing id: %w",
			core.ErrInvalidRecord,
		)
	}

	return u, nil
}

func (r *repository) SetCurrentUser(
	ctx context.Context,
	clientID string,
	u *user.User,
) error {
	if err := kvstore.SetJSON(ctx, r.store, CurrentUserKey(clientID), u); err != nil {
		return fmt.Errorf("set current user: %w", err)
	}
	return nil
}

func (r *repository) ClearCurrentUser(ctx context.Context, clientID string) error {
	if err := r.store.Remove(ctx, CurrentUserKey(clientID)); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

func (r *repository) Scratch(ctx context.Context, clientID string) (Scratch, error) {
	scratch, err := kvstore.GetJSON[Scratch](ctx, r.store, ScratchKey(clientID))
	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidRecord) {
		return Scratch{}, nil
	}
	if err != nil {
		return Scratch{}, fmt.Errorf("load scratch: %w", err)
	}

	return *scratch, nil
}

func (r *repository) SaveScratch(
	ctx context.Context,
	clientID string,
	scratch Scratch,
) error {
	if err := kvstore.SetJSON(ctx, r.store, ScratchKey(clientID), scratch); err != nil {
		return fmt.Errorf("save scratch: %w", err)
	}
	return nil
}

func (r *repository) ClearScratch(ctx context.Context, clientID string) error {
	if err := r.store.Remove(ctx, ScratchKey(clientID)); err != nil {
		return fmt.Errorf("clear scratch: %w", err)
	}
	return nil
}
