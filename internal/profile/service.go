// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/metrics"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/session"
	"github.com/carterperez-dev/storefront/internal/user"
)

var (
	ErrStoreNameRequired = fmt.Errorf(
		"%s: %w",
		MsgStoreNameRequired,
		core.ErrInvalidInput,
	)
	ErrNotLoggedIn = fmt.Errorf("no current user: %w", core.ErrUnauthorized)
)

type Service struct {
	repo      Repository
	sessions  session.Repository
	sanitizer *bluemonday.Policy
	metrics   metrics.Recorder
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(
	repo Repository,
	sessions session.Repository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		repo:      repo,
		sessions:  sessions,
		sanitizer: bluemonday.StrictPolicy(),
		metrics:   recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Editor is what the profile page is initialized with.
type Editor struct {
	User   *user.User
	Form   Form
	Exists bool
}

// LoadExisting resolves the logged-in user and fills the editor from their
// stored profile, or returns the empty form. A corrupt profile also yields
// the empty form so the user can overwrite it.
func (s *Service) LoadExisting(ctx context.Context, clientID string) (*Editor, error) {
	ctx, span := core.Tracer("profile").Start(ctx, "profile.LoadExisting")
	defer span.End()

	u, err := s.currentUser(ctx, clientID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Get(ctx, u.ID)
	switch {
	case err == nil:
		return &Editor{User: u, Form: FromProfile(p), Exists: true}, nil
	case errors.Is(err, core.ErrNotFound):
		return &Editor{User: u, Form: EmptyForm()}, nil
	case errors.Is(err, core.ErrInvalidRecord):
		s.logger.WarnContext(ctx, "discarding unreadable profile",
			"user_id", u.ID,
			"error", err,
		)
		return &Editor{User: u, Form: EmptyForm()}, nil
	default:
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("load profile: %w", err)
	}
}

// Save overwrites the current user's profile and routes to the dashboard.
// A blank store name rejects the save with nothing written.
func (s *Service) Save(
	ctx context.Context,
	clientID string,
	form Form,
) (*Profile, page.Page, error) {
	ctx, span := core.Tracer("profile").Start(ctx, "profile.Save")
	defer span.End()

	u, err := s.currentUser(ctx, clientID)
	if err != nil {
		return nil, page.StartUp, err
	}

	p := form.ToProfile()
	if strings.TrimSpace(p.StoreName) == "" {
		s.metrics.RecordProfileSave("invalid")
		return nil, page.StoreProfile, ErrStoreNameRequired
	}

	p.Description = s.sanitizeText(p.Description)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, u.ID, &p); err != nil {
		core.SetSpanError(ctx, err)
		s.metrics.RecordProfileSave("error")
		return nil, page.StoreProfile, err
	}

	s.metrics.RecordProfileSave("ok")
	core.AddSpanEvent(ctx, "profile.saved", attribute.String("user_id", u.ID))
	s.logger.DebugContext(ctx, "profile saved", "user_id", u.ID)

	return &p, page.Dashboard, nil
}

// Cancel discards edits only when the user confirmed.
func (s *Service) Cancel(confirmed bool) page.Page {
	if confirmed {
		return page.Dashboard
	}
	return page.StoreProfile
}

func (s *Service) ToggleClosedDay(form Form, day string, closed bool) (Form, error) {
	if err := form.ToggleClosedDay(day, closed); err != nil {
		return form, err
	}
	return form, nil
}

func (s *Service) currentUser(ctx context.Context, clientID string) (*user.User, error) {
	u, err := s.sessions.CurrentUser(ctx, clientID)
	if err == nil {
		return u, nil
	}

	if errors.Is(err, core.ErrNotFound) || errors.Is(err, core.ErrInvalidRecord) {
		return nil, ErrNotLoggedIn
	}

	return nil, err
}

// sanitizeText strips markup. The result is HTML-escaped text and is
// stored as returned; decoding it again would revive escaped tags.
func (s *Service) sanitizeText(text string) string {
	return s.sanitizer.Sanitize(text)
}
