// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/metrics"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/session"
	"github.com/carterperez-dev/storefront/internal/user"
)

const (
	MsgMissingFields      = "Please fill in all fields"
	MsgInvalidCredentials = "Invalid credentials"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = fmt.Errorf("missing email or password: %w", core.ErrInvalidInput)
)

// ProfileLookup decides where a freshly logged-in user lands.
type ProfileLookup interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Result is the outcome of an auth operation: the page to show next and
// the user now in the session pointer, if any.
type Result struct {
	Next page.Page
	User *user.User
}

type Service struct {
	users    *user.Service
	sessions session.Repository
	profiles ProfileLookup
	google   IDTokenVerifier
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewService wires the auth flows. google may be nil, which disables
// GoogleSignIn.
func NewService(
	users *user.Service,
	sessions session.Repository,
	profiles ProfileLookup,
	google IDTokenVerifier,
	recorder metrics.Recorder,
	logger *slog.Logger,
) *Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		users:    users,
		sessions: sessions,
		profiles: profiles,
		google:   google,
		metrics:  recorder,
		logger:   logger,
	}
}

// SignIn logs in the first stored user, in list order, whose email and
// password both match. A failed attempt leaves the session untouched.
func (s *Service) SignIn(
	ctx context.Context,
	clientID, email, password string,
) (*Result, error) {
	ctx, span := core.Tracer("auth").Start(ctx, "auth.SignIn")
	defer span.End()

	if strings.TrimSpace(email) == "" || password == "" {
		s.metrics.RecordAuth("signin", "invalid")
		return nil, ErrMissingFields
	}

	candidates, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if len(candidates) == 0 {
		//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
		_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
		s.metrics.RecordAuth("signin", "rejected")
		return nil, ErrInvalidCredentials
	}

	var matched *user.User
	for i := range candidates {
		candidate := candidates[i]

		valid, newHash, verifyErr := core.VerifyPasswordTimingSafe(
			password,
			&candidate.Password,
		)
		if verifyErr != nil {
			s.logger.WarnContext(ctx, "skipping user with unreadable password hash",
				"user_id", candidate.ID,
				"error", verifyErr,
			)
			continue
		}
		if !valid {
			continue
		}

		if newHash != "" {
			//nolint:errcheck // best-effort rehash upgrade
			_ = s.users.UpdatePassword(ctx, candidate.ID, newHash)
		}
		matched = &candidate
		break
	}

	if matched == nil {
		s.metrics.RecordAuth("signin", "rejected")
		return nil, ErrInvalidCredentials
	}

	res, err := s.login(ctx, clientID, matched)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	s.metrics.RecordAuth("signin", "ok")
	return res, nil
}

// SignUp always creates a new user, even for an email already on file,
// and sends them to the profile editor.
func (s *Service) SignUp(
	ctx context.Context,
	clientID, email, password string,
) (*Result, error) {
	ctx, span := core.Tracer("auth").Start(ctx, "auth.SignUp")
	defer span.End()

	if strings.TrimSpace(email) == "" || password == "" {
		s.metrics.RecordAuth("signup", "invalid")
		return nil, ErrMissingFields
	}

	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, email, passwordHash)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sessions.SetCurrentUser(ctx, clientID, u); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("sign up: %w", err)
	}

	span.SetAttributes(attribute.String("user_id", u.ID))
	s.logger.InfoContext(ctx, "user signed up", "user_id", u.ID)
	s.metrics.RecordAuth("signup", "ok")

	return &Result{Next: page.StoreProfile, User: u}, nil
}

func (s *Service) GuestMode(ctx context.Context, clientID string) (*Result, error) {
	ctx, span := core.Tracer("auth").Start(ctx, "auth.GuestMode")
	defer span.End()

	guest := s.users.Guest()
	if err := s.sessions.SetCurrentUser(ctx, clientID, guest); err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("guest mode: %w", err)
	}

	s.metrics.RecordAuth("guest", "ok")
	return &Result{Next: page.StoreProfile, User: guest}, nil
}

// GoogleSignIn logs in the account a verified Google ID token names. The
// federated record is not added to the users list.
func (s *Service) GoogleSignIn(
	ctx context.Context,
	clientID, credential string,
) (*Result, error) {
	ctx, span := core.Tracer("auth").Start(ctx, "auth.GoogleSignIn")
	defer span.End()

	if s.google == nil {
		return nil, ErrGoogleDisabled
	}
	if credential == "" {
		return nil, ErrMissingFields
	}

	identity, err := s.google.Verify(ctx, credential)
	if err != nil {
		s.metrics.RecordAuth("google", "rejected")
		return nil, err
	}

	u, err := s.users.NewGoogleUser(identity.Email)
	if err != nil {
		return nil, err
	}

	res, err := s.login(ctx, clientID, u)
	if err != nil {
		return nil, fmt.Errorf("google sign in: %w", err)
	}

	s.metrics.RecordAuth("google", "ok")
	return res, nil
}

// Logout clears the session pointer and the session scratch. The next page
// is always the start page; cleanup failures are reported alongside it.
func (s *Service) Logout(ctx context.Context, clientID string) (page.Page, error) {
	ctx, span := core.Tracer("auth").Start(ctx, "auth.Logout")
	defer span.End()

	var errs []error
	if err := s.sessions.ClearCurrentUser(ctx, clientID); err != nil {
		s.logger.ErrorContext(ctx, "logout: clear current user", "error", err)
		errs = append(errs, err)
	}
	if err := s.sessions.ClearScratch(ctx, clientID); err != nil {
		s.logger.WarnContext(ctx, "logout: clear scratch", "error", err)
		errs = append(errs, err)
	}

	s.metrics.RecordAuth("logout", "ok")
	return page.StartUp, errors.Join(errs...)
}

// Restore answers the start page's question: is someone already logged in
// here, and where should they go.
func (s *Service) Restore(ctx context.Context, clientID string) (*Result, error) {
	u, err := s.sessions.CurrentUser(ctx, clientID)
	if errors.Is(err, core.ErrNotFound) {
		return &Result{Next: page.StartUp}, nil
	}
	if errors.Is(err, core.ErrInvalidRecord) {
		s.logger.WarnContext(ctx, "ignoring unusable session pointer", "error", err)
		return &Result{Next: page.StartUp}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	next, err := s.landingPage(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &Result{Next: next, User: u}, nil
}

func (s *Service) login(
	ctx context.Context,
	clientID string,
	u *user.User,
) (*Result, error) {
	next, err := s.landingPage(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.SetCurrentUser(ctx, clientID, u); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	return &Result{Next: next, User: u}, nil
}

func (s *Service) landingPage(ctx context.Context, u *user.User) (page.Page, error) {
	exists, err := s.profiles.Exists(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if exists {
		return page.Dashboard, nil
	}
	return page.StoreProfile, nil
}
