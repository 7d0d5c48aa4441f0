// AngelaMos | 2026
// handler.go

package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/middleware"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/user"
)

type Handler struct {
	service   *Service
	client    middleware.ClientConfig
	validator *validator.Validate
}

func NewHandler(service *Service, client middleware.ClientConfig) *Handler {
	return &Handler{
		service:   service,
		client:    client,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Get("/permissions", h.Permissions)
		r.Post("/navigate", h.Navigate)
		r.Get("/layout", h.Layout)
		r.Get("/export", h.Export)
		r.Post("/edit", h.Edit)
		r.Post("/logout", h.Logout)
	})
}

type DashboardResponse struct {
	State         State              `json:"state"`
	Next          page.Page          `json:"next"`
	User          *user.UserResponse `json:"user,omitempty"`
	View          *View              `json:"view,omitempty"`
	Permissions   *Permissions       `json:"permissions,omitempty"`
	ActiveSection string             `json:"activeSection,omitempty"`
	Notice        *Notice            `json:"notice,omitempty"`
}

type NavigateRequest struct {
	Section string `json:"section" validate:"required,max=64"`
}

type NavigateResponse struct {
	Next page.Page `json:"next"`
	NavigateResult
}

type LogoutRequest struct {
	Confirmed bool `json:"confirmed"`
}

type NextResponse struct {
	Next page.Page `json:"next"`
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	view, err := d.Render()
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	u := user.ToUserResponse(d.User())
	perms := d.Permissions()

	core.OK(w, DashboardResponse{
		State:         d.State(),
		Next:          page.Dashboard,
		User:          &u,
		View:          view,
		Permissions:   &perms,
		ActiveSection: d.ActiveSection(r.Context()),
		Notice:        d.Notice(),
	})
}

func (h *Handler) Permissions(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	core.OK(w, d.Permissions())
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	d, ok := h.load(w, r)
	if !ok {
		return
	}

	res := d.Navigate(r.Context(), req.Section)
	next := page.Dashboard
	if res.Redirect != "" {
		next = res.Redirect
	}

	core.OK(w, NavigateResponse{Next: next, NavigateResult: res})
}

// Layout needs no session; it only classifies the viewport width.
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.URL.Query().Get("width"))
	if err != nil || width < 0 {
		core.BadRequest(w, "width must be a non-negative integer")
		return
	}

	core.OK(w, HandleResize(width))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	export, err := d.Export(r.Context())
	if err != nil {
		h.writeNoticeError(w, r, d, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", export.ContentDisposition())
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = w.Write(export.Body)
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}

	next, err := d.EditProfile()
	if err != nil {
		h.writeNoticeError(w, r, d, err)
		return
	}

	core.OK(w, NextResponse{Next: next})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	clientID := middleware.GetClientID(r.Context())
	next, err := h.service.Open(clientID).Logout(r.Context(), req.Confirmed)
	if err != nil {
		slog.ErrorContext(r.Context(), "dashboard logout incomplete",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	if next == page.StartUp {
		middleware.ExpireClientCookie(w, h.client)
	}

	core.OK(w, NextResponse{Next: next})
}

// load opens the dashboard for the request's client and writes the
// redirect response itself when the user or profile is missing.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*Dashboard, bool) {
	d := h.service.Open(middleware.GetClientID(r.Context()))

	res := d.Load(r.Context())
	if res.Ready() {
		return d, true
	}

	if res.Failed() {
		core.JSONErrorWithNext(
			w,
			core.UnavailableError(res.Alert),
			res.Redirect.String(),
		)
		return nil, false
	}

	core.OK(w, DashboardResponse{State: res.State, Next: res.Redirect})
	return nil, false
}

func (h *Handler) writeNoticeError(
	w http.ResponseWriter,
	r *http.Request,
	d *Dashboard,
	err error,
) {
	message := MsgExportFailed
	if n := d.Notice(); n != nil {
		message = n.Message
	}

	switch {
	case errors.Is(err, core.ErrForbidden):
		core.JSONErrorWithNext(w, core.ForbiddenError(message), page.Dashboard.String())
	case errors.Is(err, core.ErrNotFound):
		core.JSONErrorWithNext(w, core.NotFoundError(message), page.Dashboard.String())
	default:
		slog.ErrorContext(r.Context(), "dashboard operation failed",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		core.JSONErrorWithNext(w, core.NewAppError(
			err,
			message,
			http.StatusInternalServerError,
			"INTERNAL_ERROR",
		), page.Dashboard.String())
	}
}
