// AngelaMos | 2026
// handler.go

package cms

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rossoverde/supporters/internal/core"
)

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
	r.Route("/cms", func(r chi.Router) {
		r.Get("/", h.Published)
		r.Get("/{pageKey}", h.Get)
	})
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/cms", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Put("/{pageKey}", h.Upsert)
	})
}

func (h *Handler) Published(w http.ResponseWriter, r *http.Request) {
	byKey, err := h.service.Published(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, byKey)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), chi.URLParam(r, "pageKey"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "page content")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, c)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, list)
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Upsert(r.Context(), chi.URLParam(r, "pageKey"), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, err.Error())
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, c)
}
