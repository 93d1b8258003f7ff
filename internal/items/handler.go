package items

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/bluething/boostpo/internal/platform/httpx"
	"github.com/bluething/boostpo/internal/shared"
	"github.com/bluething/boostpo/internal/timezone"
)

// Handler exposes the item catalog over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	tz       *timezone.Converter
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, tz *timezone.Converter) *Handler {
	return &Handler{logger: logger, service: service, tz: tz, validate: httpx.NewValidator()}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	req := shared.NewPageRequest(page, size)

	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list items", slog.Any("error", err))
		httpx.RespondError(w, r, err)
		return
	}
	content := make([]itemResponse, len(list))
	for i, item := range list {
		content[i] = toResponse(item, h.tz)
	}
	httpx.JSON(w, http.StatusOK, shared.NewPage(content, req, total))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Invalid argument", "item id must be an integer")
		return
	}
	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(item, h.tz))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Invalid argument", "malformed request body")
		return
	}
	if fields := httpx.FieldErrors(h.validate.Struct(req)); fields != nil {
		httpx.ValidationFailed(w, r, fields)
		return
	}
	item, err := h.service.Create(r.Context(), CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Cost:        *req.Cost,
		Actor:       shared.ActorFromContext(r.Context()),
	})
	if err != nil {
		h.logger.Error("create item", slog.Any("error", err))
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(item, h.tz))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Invalid argument", "item id must be an integer")
		return
	}
	var req updateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Invalid argument", "malformed request body")
		return
	}
	if fields := httpx.FieldErrors(h.validate.Struct(req)); fields != nil {
		httpx.ValidationFailed(w, r, fields)
		return
	}
	item, err := h.service.Update(r.Context(), id, UpdateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Cost:        *req.Cost,
		Actor:       shared.ActorFromContext(r.Context()),
	})
	if err != nil {
		h.logger.Error("update item", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(item, h.tz))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Invalid argument", "item id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id, shared.ActorFromContext(r.Context())); err != nil {
		h.logger.Error("delete item", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, r, err)
		return
	}
	httpx.NoContent(w)
}
