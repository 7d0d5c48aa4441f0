// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
)

func Key(userID string) string {
	return "storeProfile_" + userID
}

type Repository interface {
	// Get returns core.ErrNotFound when the user has no profile and
	// core.ErrInvalidRecord when the stored one cannot be decoded.
	Get(ctx context.Context, userID string) (*Profile, error)
	Save(ctx context.Context, userID string, p *Profile) error
	Exists(ctx context.Context, userID string) (bool, error)
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Get(ctx context.Context, userID string) (*Profile, error) {
	p, err := kvstore.GetJSON[Profile](ctx, r.store, Key(userID))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (r *repository) Save(ctx context.Context, userID string, p *Profile) error {
	if err := kvstore.SetJSON(ctx, r.store, Key(userID), p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Exists only checks presence; an undecodable record still counts.
func (r *repository) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := r.store.Get(ctx, Key(userID))
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check profile: %w", err)
	}
	return true, nil
}
