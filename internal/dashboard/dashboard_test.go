// AngelaMos | 2026
// dashboard_test.go

package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/kvstore"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/profile"
	"github.com/carterperez-dev/storefront/internal/session"
	"github.com/carterperez-dev/storefront/internal/user"
)

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func guestUser() *user.User {
	return user.Guest(fixedNow)
}

func registeredUser() *user.User {
	return &user.User{ID: "u1", Email: "joe@example.com", Password: "hash"}
}

func sampleProfile() *profile.Profile {
	return &profile.Profile{
		StoreName:    "Corner",
		BusinessType: profile.BusinessGrocery,
		Hours: map[string]profile.DayHours{
			"monday": {Open: "08:00", Close: "20:00"},
			"sunday": {Closed: true},
		},
		UpdatedAt: fixedNow,
	}
}

// failingStore fails every operation on keys containing match.
type failingStore struct {
	kvstore.Store
	match string
}

var errStoreDown = errors.New("store unavailable")

func (f failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.Contains(key, f.match) {
		return nil, errStoreDown
	}
	return f.Store.Get(ctx, key)
}

func (f failingStore) Remove(ctx context.Context, key string) error {
	if strings.Contains(key, f.match) {
		return errStoreDown
	}
	return f.Store.Remove(ctx, key)
}

func newTestService(t *testing.T, store kvstore.Store) *Service {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(
		session.NewRepository(store),
		profile.NewRepository(store),
		nil,
		logger,
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func seed(t *testing.T, store kvstore.Store, clientID string, u *user.User, p *profile.Profile) {
	t.Helper()
	ctx := context.Background()

	if u != nil {
		require.NoError(t, session.NewRepository(store).SetCurrentUser(ctx, clientID, u))
	}
	if u != nil && p != nil {
		require.NoError(t, profile.NewRepository(store).Save(ctx, u.ID, p))
	}
}

func TestLoad_NoUserRedirectsToStart(t *testing.T) {
	d := newTestService(t, kvstore.NewMemory()).Open("c1")

	res := d.Load(context.Background())

	assert.Equal(t, StateRedirecting, res.State)
	assert.Equal(t, page.StartUp, res.Redirect)
	assert.Equal(t, ReasonNoUser, res.Reason)
	assert.Empty(t, res.Alert)
	assert.Equal(t, StateRedirecting, d.State())
}

func TestLoad_InvalidUserRedirectsToStart(t *testing.T) {
	for name, raw := range map[string]string{
		"undecodable": "{not json",
		"missing id":  `{"email":"joe@example.com"}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := kvstore.NewMemory()
			require.NoError(t, store.Set(context.Background(), session.CurrentUserKey("c1"), []byte(raw)))

			res := newTestService(t, store).Open("c1").Load(context.Background())

			assert.Equal(t, page.StartUp, res.Redirect)
			assert.Equal(t, ReasonInvalidUser, res.Reason)
		})
	}
}

func TestLoad_MissingOrCorruptProfileRedirectsToEditor(t *testing.T) {
	ctx := context.Background()

	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), nil)
	res := newTestService(t, store).Open("c1").Load(ctx)
	assert.Equal(t, page.StoreProfile, res.Redirect)
	assert.Equal(t, ReasonNoProfile, res.Reason)

	require.NoError(t, store.Set(ctx, profile.Key("u1"), []byte("[1,2")))
	res = newTestService(t, store).Open("c1").Load(ctx)
	assert.Equal(t, page.StoreProfile, res.Redirect)
	assert.Equal(t, ReasonInvalidProfile, res.Reason)
}

func TestLoad_StoreFailureAlertsAndRedirects(t *testing.T) {
	store := failingStore{Store: kvstore.NewMemory(), match: "currentUser"}

	res := newTestService(t, store).Open("c1").Load(context.Background())

	assert.True(t, res.Failed())
	assert.Equal(t, page.StartUp, res.Redirect)
	assert.Equal(t, MsgInitFailed, res.Alert)
}

func TestLoadAndRender(t *testing.T) {
	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), sampleProfile())
	d := newTestService(t, store).Open("c1")

	res := d.Load(context.Background())
	require.True(t, res.Ready())
	assert.Equal(t, StateProfileLoaded, d.State())

	view, err := d.Render()
	require.NoError(t, err)
	assert.Equal(t, StateRendered, d.State())
	assert.Equal(t, "Corner", view.StoreName)
	assert.Equal(t, "Grocery Store", view.BusinessType)
	assert.Equal(t, "8:00 AM - 8:00 PM", view.Hours[0].Text)
	assert.Equal(t, HoursClosed, view.Hours[6].Text)
	assert.Empty(t, view.Warnings)
}

func TestRender_BeforeLoad(t *testing.T) {
	d := newTestService(t, kvstore.NewMemory()).Open("c1")

	_, err := d.Render()
	require.ErrorIs(t, err, ErrNotLoaded)
	require.NotNil(t, d.Notice())
	assert.Equal(t, MsgRenderFailed, d.Notice().Message)
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), sampleProfile())
	svc := newTestService(t, store)

	d := svc.Open("c1")
	require.True(t, d.Load(ctx).Ready())

	res := d.Navigate(ctx, "#profile")
	assert.Equal(t, SectionProfile, res.Section)
	require.NotNil(t, res.View)
	assert.Equal(t, "Corner", res.View.StoreName)
	assert.Nil(t, res.Notice)

	res = d.Navigate(ctx, "inventory")
	require.NotNil(t, res.Notice)
	assert.Equal(t, NoticeComingSoon, res.Notice.Kind)
	assert.Equal(t, "Inventory Management feature is coming soon!", res.Notice.Message)
	assert.Nil(t, res.Notice.DismissAt)
	assert.Equal(t, SectionInventory, svc.Open("c1").ActiveSection(ctx))

	res = d.Navigate(ctx, "#orders")
	require.NotNil(t, res.Notice)
	assert.Equal(t, NoticeError, res.Notice.Kind)
	assert.Equal(t, MsgUnknownSection, res.Notice.Message)
	require.NotNil(t, res.Notice.DismissAt)
	assert.Equal(t, fixedNow.Add(NoticeTTL), *res.Notice.DismissAt)
	assert.Equal(t, SectionInventory, svc.Open("c1").ActiveSection(ctx),
		"unknown sections are not remembered")

	res = d.Navigate(ctx, "#reports")
	assert.Equal(t, "Reports & Analytics feature is coming soon!", d.Notice().Message,
		"a new notice replaces the previous one")
	assert.Same(t, d.Notice(), res.Notice)
}

func TestNavigate_ProfileRemovedMeanwhile(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), sampleProfile())
	d := newTestService(t, store).Open("c1")
	require.True(t, d.Load(ctx).Ready())

	require.NoError(t, store.Remove(ctx, profile.Key("u1")))

	res := d.Navigate(ctx, "profile")
	assert.Equal(t, page.StoreProfile, res.Redirect)
	assert.Nil(t, res.View)
}

func TestActiveSection_DefaultsToProfile(t *testing.T) {
	d := newTestService(t, kvstore.NewMemory()).Open("c1")
	assert.Equal(t, SectionProfile, d.ActiveSection(context.Background()))
}

func TestEditProfile(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store, "c1", guestUser(), sampleProfile())
	svc := newTestService(t, store)

	d := svc.Open("c1")
	require.True(t, d.Load(ctx).Ready())
	next, err := d.EditProfile()
	require.NoError(t, err)
	assert.Equal(t, page.StoreProfile, next)

	anonymous := svc.Open("c2")
	next, err = anonymous.EditProfile()
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Equal(t, page.Dashboard, next)
	assert.Equal(t, MsgEditDenied, anonymous.Notice().Message)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), sampleProfile())
	d := newTestService(t, store).Open("c1")
	require.True(t, d.Load(ctx).Ready())

	export, err := d.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "store-profile-Corner.json", export.Filename)
	assert.Contains(t, string(export.Body), "\n  \"storeName\": \"Corner\"")

	var decoded profile.Profile
	require.NoError(t, json.Unmarshal(export.Body, &decoded))
	assert.Equal(t, *sampleProfile(), decoded)
}

func TestExport_Refusals(t *testing.T) {
	ctx := context.Background()

	t.Run("guest", func(t *testing.T) {
		store := kvstore.NewMemory()
		seed(t, store, "c1", guestUser(), sampleProfile())
		d := newTestService(t, store).Open("c1")
		require.True(t, d.Load(ctx).Ready())

		_, err := d.Export(ctx)
		require.ErrorIs(t, err, ErrExportForbidden)
		assert.Equal(t, MsgExportDenied, d.Notice().Message)
	})

	t.Run("no profile", func(t *testing.T) {
		store := kvstore.NewMemory()
		seed(t, store, "c1", registeredUser(), nil)
		d := newTestService(t, store).Open("c1")
		require.Equal(t, StateUserLoaded, d.LoadUser(ctx).State)

		_, err := d.Export(ctx)
		require.ErrorIs(t, err, ErrNothingToExport)
		assert.Equal(t, MsgNoProfileToExport, d.Notice().Message)
	})

	t.Run("store failure", func(t *testing.T) {
		mem := kvstore.NewMemory()
		seed(t, mem, "c1", registeredUser(), sampleProfile())
		d := newTestService(t, failingStore{Store: mem, match: "storeProfile_"}).Open("c1")
		require.Equal(t, StateUserLoaded, d.LoadUser(ctx).State)

		_, err := d.Export(ctx)
		require.ErrorIs(t, err, errStoreDown)
		assert.Equal(t, MsgExportFailed, d.Notice().Message)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	seed(t, store, "c1", registeredUser(), sampleProfile())
	svc := newTestService(t, store)
	require.NoError(t, session.NewRepository(store).SaveScratch(ctx, "c1", session.Scratch{ActiveSection: "reports"}))

	next, err := svc.Open("c1").Logout(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, page.Dashboard, next)
	_, err = store.Get(ctx, session.CurrentUserKey("c1"))
	require.NoError(t, err, "declining keeps the session")

	d := svc.Open("c1")
	require.True(t, d.Load(ctx).Ready())
	next, err = d.Logout(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, page.StartUp, next)
	assert.Nil(t, d.User())
	assert.Nil(t, d.Profile())

	assert.Equal(t, []string{profile.Key("u1")}, store.Keys(),
		"only the profile survives logout")
}

func TestLogout_PointerClearedWhenScratchFails(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	seed(t, mem, "c1", registeredUser(), sampleProfile())
	store := failingStore{Store: mem, match: "sessionScratch"}

	next, err := newTestService(t, store).Open("c1").Logout(ctx, true)

	require.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, page.StartUp, next)
	_, err = mem.Get(ctx, session.CurrentUserKey("c1"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}
