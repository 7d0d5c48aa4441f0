// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
)

func newTestService(t *testing.T) (*Service, *kvstore.Memory) {
	t.Helper()

	store := kvstore.NewMemory()
	svc := NewService(NewRepository(store))
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func TestCreate_AppendsInOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	first, err := svc.Create(ctx, "a@b.com", "hash-1")
	require.NoError(t, err)
	second, err := svc.Create(ctx, " a@b.com ", "hash-2")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "a@b.com", second.Email)
	assert.False(t, first.IsGuest)

	matches, err := svc.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, matches, 2, "duplicate emails are kept")
	assert.Equal(t, first.ID, matches[0].ID)
	assert.Equal(t, second.ID, matches[1].ID)

	padded, err := svc.FindByEmail(ctx, "  a@b.com")
	require.NoError(t, err)
	assert.Len(t, padded, 2, "lookups trim the email like sign-up does")
}

func TestFindByEmail_EmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	matches, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindByEmail_CorruptList(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	require.NoError(t, store.Set(ctx, UsersKey, []byte("not a list")))

	_, err := svc.FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, core.ErrInvalidRecord)
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	u, err := svc.Create(ctx, "a@b.com", "old")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "new"))
	matches, err := svc.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "new", matches[0].Password)

	err = svc.UpdatePassword(ctx, "missing", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGoogleAndGuestRecords(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	g, err := svc.NewGoogleUser("person@gmail.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(g.ID, "google_"))
	assert.Equal(t, ProviderGoogle, g.Provider)
	assert.True(t, g.IsFederated())

	guest := svc.Guest()
	assert.Equal(t, GuestID, guest.ID)
	assert.Equal(t, GuestEmail, guest.Email)
	assert.True(t, guest.IsGuest)

	users, err := NewRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "guest and google records are not listed")
}
