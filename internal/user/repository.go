// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
)

// UsersKey holds the ordered list of every signed-up user.
const UsersKey = "users"

type Repository interface {
	List(ctx context.Context) ([]User, error)
	Append(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

type repository struct {
	store kvstore.Store
}

func NewRepository(store kvstore.Store) Repository {
	return &repository{store: store}
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	users, err := kvstore.GetJSON[[]User](ctx, r.store, UsersKey)
	if errors.Is(err, core.ErrNotFound) {
		return []User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if *users == nil {
		return []User{}, nil
	}

	return *users, nil
}

func (r *repository) Append(ctx context.Context, user *User) error {
	err := kvstore.UpdateJSON(
		ctx,
		r.store,
		UsersKey,
		func(users []User, _ bool) ([]User, error) {
			return append(users, *user), nil
		},
	)
	if err != nil {
		return fmt.Errorf("append user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	err := kvstore.UpdateJSON(
		ctx,
		r.store,
		UsersKey,
		func(users []User, _ bool) ([]User, error) {
			for i := range users {
				if users[i].ID == id {
					users[i].Password = passwordHash
					return users, nil
				}
			}
			return nil, core.ErrNotFound
		},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
