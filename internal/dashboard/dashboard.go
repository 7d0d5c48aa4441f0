// AngelaMos | 2026
// dashboard.go

// Package dashboard turns the logged-in user's stored profile into the
// read-only dashboard and drives navigation, export and logout from it.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/metrics"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/profile"
	"github.com/carterperez-dev/storefront/internal/session"
	"github.com/carterperez-dev/storefront/internal/user"
)

var (
	ErrNotLoaded       = errors.New("dashboard not loaded")
	ErrEditForbidden   = fmt.Errorf("edit profile: %w", core.ErrForbidden)
	ErrExportForbidden = fmt.Errorf("export profile: %w", core.ErrForbidden)
	ErrNothingToExport = fmt.Errorf("export profile: %w", core.ErrNotFound)
)

// Sections a user can navigate to. Only profile has content.
const (
	SectionProfile   = "profile"
	SectionInventory = "inventory"
	SectionReports   = "reports"
	SectionSettings  = "settings"
)

var comingSoon = map[string]string{
	SectionInventory: "Inventory Management",
	SectionReports:   "Reports & Analytics",
	SectionSettings:  "Settings",
}

type Service struct {
	sessions session.Repository
	profiles profile.Repository
	metrics  metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(
	sessions session.Repository,
	profiles profile.Repository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		sessions: sessions,
		profiles: profiles,
		metrics:  recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Open starts a dashboard for one client. A Dashboard is used by a single
// request and is not safe for concurrent use.
func (s *Service) Open(clientID string) *Dashboard {
	return &Dashboard{
		svc:      s,
		clientID: clientID,
		state:    StateUninitialized,
	}
}

type Dashboard struct {
	svc      *Service
	clientID string
	state    State
	user     *user.User
	profile  *profile.Profile
	notice   *Notice
}

func (d *Dashboard) State() State              { return d.state }
func (d *Dashboard) User() *user.User          { return d.user }
func (d *Dashboard) Profile() *profile.Profile { return d.profile }

// Notice is the single notice currently shown, if any.
func (d *Dashboard) Notice() *Notice { return d.notice }

// Load runs LoadUser then LoadProfile and stops at the first redirect.
func (d *Dashboard) Load(ctx context.Context) LoadResult {
	ctx, span := core.Tracer("dashboard").Start(ctx, "dashboard.Load")
	defer span.End()

	res := d.LoadUser(ctx)
	if res.State == StateUserLoaded {
		res = d.LoadProfile(ctx)
	}

	outcome := res.State.String()
	if res.Reason != "" {
		outcome = res.Reason
	}
	d.svc.metrics.RecordDashboardLoad(outcome)
	span.SetAttributes(attribute.String("dashboard.state", res.State.String()))

	return res
}

func (d *Dashboard) LoadUser(ctx context.Context) LoadResult {
	d.state = StateLoadingUser

	u, err := d.svc.sessions.CurrentUser(ctx, d.clientID)
	switch {
	case err == nil:
		d.user = u
		d.state = StateUserLoaded
		return LoadResult{State: StateUserLoaded}
	case errors.Is(err, core.ErrNotFound):
		return d.redirect(page.StartUp, ReasonNoUser)
	case errors.Is(err, core.ErrInvalidRecord):
		d.svc.logger.WarnContext(ctx, "unusable current user",
			"client_id", d.clientID,
			"error", err,
		)
		return d.redirect(page.StartUp, ReasonInvalidUser)
	default:
		return d.fail(ctx, err)
	}
}

func (d *Dashboard) LoadProfile(ctx context.Context) LoadResult {
	if d.user == nil {
		return d.redirect(page.StartUp, ReasonNoUser)
	}

	d.state = StateLoadingProfile

	p, err := d.svc.profiles.Get(ctx, d.user.ID)
	switch {
	case err == nil:
		d.profile = p
		d.state = StateProfileLoaded
		return LoadResult{State: StateProfileLoaded}
	case errors.Is(err, core.ErrNotFound):
		return d.redirect(page.StoreProfile, ReasonNoProfile)
	case errors.Is(err, core.ErrInvalidRecord):
		d.svc.logger.WarnContext(ctx, "unreadable store profile",
			"user_id", d.user.ID,
			"error", err,
		)
		return d.redirect(page.StoreProfile, ReasonInvalidProfile)
	default:
		return d.fail(ctx, err)
	}
}

// Render builds the view of the loaded profile. Required-field warnings
// are reported alongside it and never block rendering.
func (d *Dashboard) Render() (*View, error) {
	if d.profile == nil {
		d.notify(errorNotice(MsgRenderFailed, d.svc.now()))
		return nil, ErrNotLoaded
	}

	view := RenderProfile(d.profile)
	d.state = StateRendered
	return view, nil
}

func (d *Dashboard) Permissions() Permissions {
	return PermissionsFor(d.user)
}

// NavigateResult is what a section change shows. Redirect is set when
// reloading the profile sent the user elsewhere.
type NavigateResult struct {
	Section  string    `json:"section"`
	View     *View     `json:"view,omitempty"`
	Notice   *Notice   `json:"notice,omitempty"`
	Redirect page.Page `json:"redirect,omitempty"`
}

// Navigate switches to section, with or without a leading '#'. The
// profile section reloads and re-renders; the rest are not built yet.
func (d *Dashboard) Navigate(ctx context.Context, section string) NavigateResult {
	ctx, span := core.Tracer("dashboard").Start(ctx, "dashboard.Navigate")
	defer span.End()

	section = strings.TrimPrefix(strings.TrimSpace(section), "#")
	res := NavigateResult{Section: section}

	switch feature, soon := comingSoon[section]; {
	case section == SectionProfile:
		load := d.LoadProfile(ctx)
		if !load.Ready() {
			res.Redirect = load.Redirect
			return res
		}
		view, err := d.Render()
		if err != nil {
			d.notify(errorNotice(MsgRefreshFailed, d.svc.now()))
		}
		res.View = view
	case soon:
		d.notify(comingSoonNotice(feature))
	default:
		d.notify(errorNotice(MsgUnknownSection, d.svc.now()))
		res.Notice = d.notice
		return res
	}

	d.rememberSection(ctx, section)
	res.Notice = d.notice
	return res
}

// ActiveSection is the last section navigated to in this session.
func (d *Dashboard) ActiveSection(ctx context.Context) string {
	scratch, err := d.svc.sessions.Scratch(ctx, d.clientID)
	if err != nil || scratch.ActiveSection == "" {
		return SectionProfile
	}
	return scratch.ActiveSection
}

// EditProfile routes to the profile editor when the user may edit.
func (d *Dashboard) EditProfile() (page.Page, error) {
	if !d.Permissions().CanEdit {
		d.notify(errorNotice(MsgEditDenied, d.svc.now()))
		return page.Dashboard, ErrEditForbidden
	}
	return page.StoreProfile, nil
}

// Logout clears the session when confirmed. The currentUser pointer is
// removed first so a failure clearing scratch still logs the user out,
// and the result is always the start page.
func (d *Dashboard) Logout(ctx context.Context, confirmed bool) (page.Page, error) {
	if !confirmed {
		return page.Dashboard, nil
	}

	ctx, span := core.Tracer("dashboard").Start(ctx, "dashboard.Logout")
	defer span.End()

	var errs []error
	if err := d.svc.sessions.ClearCurrentUser(ctx, d.clientID); err != nil {
		errs = append(errs, err)
	}
	if err := d.svc.sessions.ClearScratch(ctx, d.clientID); err != nil {
		errs = append(errs, err)
	}

	d.user = nil
	d.profile = nil
	d.notice = nil
	d.state = StateRedirecting

	err := errors.Join(errs...)
	if err != nil {
		core.SetSpanError(ctx, err)
		d.svc.logger.ErrorContext(ctx, "logout incomplete",
			"client_id", d.clientID,
			"error", err,
		)
	}

	return page.StartUp, err
}

func (d *Dashboard) rememberSection(ctx context.Context, section string) {
	err := d.svc.sessions.SaveScratch(ctx, d.clientID, session.Scratch{
		ActiveSection: section,
	})
	if err != nil {
		d.svc.logger.WarnContext(ctx, "could not save active section",
			"client_id", d.clientID,
			"error", err,
		)
	}
}

func (d *Dashboard) redirect(to page.Page, reason string) LoadResult {
	d.state = StateRedirecting
	return LoadResult{State: StateRedirecting, Redirect: to, Reason: reason}
}

// fail handles a store error during load: the user is alerted and sent to
// the start page.
func (d *Dashboard) fail(ctx context.Context, err error) LoadResult {
	core.SetSpanError(ctx, err)
	d.svc.logger.ErrorContext(ctx, "dashboard initialization failed",
		"client_id", d.clientID,
		"error", err,
	)

	res := d.redirect(page.StartUp, ReasonStoreFailure)
	res.Alert = MsgInitFailed
	return res
}

// notify replaces whatever notice is showing.
func (d *Dashboard) notify(n *Notice) {
	d.notice = n
}
