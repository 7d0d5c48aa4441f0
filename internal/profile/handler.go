// AngelaMos | 2026
// handler.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/storefront/internal/core"
	"github.com/carterperez-dev/storefront/internal/middleware"
	"github.com/carterperez-dev/storefront/internal/page"
	"github.com/carterperez-dev/storefront/internal/user"
)

const MsgSaved = "Store profile saved successfully!"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/profile", func(r chi.Router) {
		r.Get("/form", h.GetForm)
		r.Put("/", h.Save)
		r.Post("/form/toggle", h.ToggleClosedDay)
		r.Post("/cancel", h.Cancel)
	})
}

type EditorResponse struct {
	Next   page.Page         `json:"next"`
	User   user.UserResponse `json:"user"`
	Form   Form              `json:"form"`
	Exists bool              `json:"exists"`
}

type SaveResponse struct {
	Next    page.Page `json:"next"`
	Message string    `json:"message"`
	Profile *Profile  `json:"profile"`
}

type ToggleRequest struct {
	Form   Form   `json:"form"`
	Day    string `json:"day"    validate:"required"`
	Closed bool   `json:"closed"`
}

type ToggleResponse struct {
	Form Form `json:"form"`
}

type CancelRequest struct {
	Confirmed bool `json:"confirmed"`
}

type NextResponse struct {
	Next page.Page `json:"next"`
}

func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())

	editor, err := h.service.LoadExisting(r.Context(), clientID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, EditorResponse{
		Next:   page.StoreProfile,
		User:   user.ToUserResponse(editor.User),
		Form:   editor.Form,
		Exists: editor.Exists,
	})
}

// Save accepts the editor's url-encoded post or the same fields as JSON.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	var form Form
	if core.IsFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
		form = ParseForm(r.PostForm)
	} else {
		form = EmptyForm()
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	clientID := middleware.GetClientID(r.Context())
	saved, next, err := h.service.Save(r.Context(), clientID, form)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, SaveResponse{Next: next, Message: MsgSaved, Profile: saved})
}

func (h *Handler) ToggleClosedDay(w http.ResponseWriter, r *http.Request) {
	req := ToggleRequest{Form: EmptyForm()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	form, err := h.service.ToggleClosedDay(req.Form, req.Day, req.Closed)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToggleResponse{Form: form})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	core.OK(w, NextResponse{Next: h.service.Cancel(req.Confirmed)})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		core.JSONErrorWithNext(
			w,
			core.UnauthorizedError("please sign in first"),
			page.StartUp.String(),
		)
	case errors.Is(err, ErrStoreNameRequired):
		core.JSONErrorWithNext(
			w,
			core.ValidationError(MsgStoreNameRequired),
			page.StoreProfile.String(),
		)
	case errors.Is(err, ErrUnknownDay):
		core.BadRequest(w, "day must be a weekday name")
	default:
		core.InternalServerError(w, err)
	}
}
