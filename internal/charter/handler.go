// AngelaMos | 2026
// handler.go

package charter

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
	r.Get("/charter", h.Active)
}

func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Route("/charter", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Publish)
	})
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Active(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "charter")
			return
		}
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, list)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Publish(r.Context(), req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.Created(w, c)
}
