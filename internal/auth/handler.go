// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/middleware"
	"github.com/carterperez-dev/storefront/internal/page"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
	client    middleware.ClientConfig
}

func NewHandler(service *Service, client middleware.ClientConfig) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		client:    client,
	}
}

// RegisterRoutes mounts the start page endpoints. limiter guards the
// credential-accepting routes.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	limiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/session", h.Session)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter)
			}
			r.Post("/signin", h.SignIn)
			r.Post("/signup", h.SignUp)
			r.Post("/guest", h.Guest)
			r.Post("/google", h.Google)
		})
	})
}

func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	res, err := h.service.Restore(r.Context(), clientID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, toAuthResponse(res))
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	clientID := middleware.GetClientID(r.Context())
	res, err := h.service.SignIn(r.Context(), clientID, req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toAuthResponse(res))
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	clientID := middleware.GetClientID(r.Context())
	res, err := h.service.SignUp(r.Context(), clientID, req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, toAuthResponse(res))
}

func (h *Handler) Guest(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	res, err := h.service.GuestMode(r.Context(), clientID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toAuthResponse(res))
}

func (h *Handler) Google(w http.ResponseWriter, r *http.Request) {
	var req GoogleRequest
	if core.IsFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
		req.Credential = r.PostForm.Get("credential")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	clientID := middleware.GetClientID(r.Context())
	res, err := h.service.GoogleSignIn(r.Context(), clientID, req.Credential)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, toAuthResponse(res))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	next, err := h.service.Logout(r.Context(), clientID)
	middleware.ExpireClientCookie(w, h.client)
	if err != nil {
		slog.ErrorContext(r.Context(), "logout incomplete",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}

	core.OK(w, AuthResponse{Next: next})
}

func (h *Handler) decodeCredentials(
	w http.ResponseWriter,
	r *http.Request,
) (CredentialsRequest, bool) {
	var req CredentialsRequest

	if core.IsFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			core.BadRequest(w, "invalid request body")
			return req, false
		}
		req.Email = r.PostForm.Get("email")
		req.Password = r.PostForm.Get("password")
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		if isMissingField(err) {
			core.JSONErrorWithNext(
				w,
				core.ValidationError(MsgMissingFields),
				page.StartUp.String(),
			)
			return req, false
		}
		core.BadRequest(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingFields):
		core.JSONErrorWithNext(
			w,
			core.ValidationError(MsgMissingFields),
			page.StartUp.String(),
		)
	case errors.Is(err, ErrInvalidCredentials):
		core.JSONErrorWithNext(
			w,
			core.UnauthorizedError(MsgInvalidCredentials),
			page.StartUp.String(),
		)
	case errors.Is(err, ErrGoogleDisabled):
		core.JSONError(w, core.NewAppError(
			err,
			"Google sign-in is not enabled",
			http.StatusNotFound,
			"GOOGLE_DISABLED",
		))
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	default:
		core.InternalServerError(w, err)
	}
}

func isMissingField(err error) bool {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false
	}
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}
