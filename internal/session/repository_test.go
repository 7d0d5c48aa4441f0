// AngelaMos | 2026
// repository_test.go

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
	"github.com/carterperez-dev/storefront/internal/user"
)

func TestCurrentUser_RoundTripPerClient(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewRepository(store)

	_, err := repo.CurrentUser(ctx, "client-a")
	require.ErrorIs(t, err, core.ErrNotFound)

	guest := user.Guest(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, repo.SetCurrentUser(ctx, "client-a", guest))

	got, err := repo.CurrentUser(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, guest, got)

	_, err = repo.CurrentUser(ctx, "client-b")
	assert.ErrorIs(t, err, core.ErrNotFound, "pointer is scoped to its client")

	require.NoError(t, repo.ClearCurrentUser(ctx, "client-a"))
	_, err = repo.CurrentUser(ctx, "client-a")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCurrentUser_InvalidRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{{"},
		{name: "missing id", raw: `{"email":"a@b.com"}`},
		{name: "empty id", raw: `{"id":"","email":"a@b.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kvstore.NewMemory()
			require.NoError(t, store.Set(ctx, CurrentUserKey("c1"), []byte(tt.raw)))

			_, err := NewRepository(store).CurrentUser(ctx, "c1")
			assert.ErrorIs(t, err, core.ErrInvalidRecord)
		})
	}
}

func TestScratch(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	repo := NewRepository(store)

	scratch, err := repo.Scratch(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, scratch.ActiveSection)

	require.NoError(t, repo.SaveScratch(ctx, "c1", Scratch{ActiveSection: "reports"}))
	scratch, err = repo.Scratch(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "reports", scratch.ActiveSection)

	require.NoError(t, repo.ClearScratch(ctx, "c1"))
	assert.Empty(t, store.Keys())
}
