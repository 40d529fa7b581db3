package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iudanet/fieldsync/internal/models"
	"github.com/iudanet/fieldsync/internal/server/storage"
	"github.com/iudanet/fieldsync/internal/validation"
	"github.com/iudanet/fieldsync/pkg/api"
)

//go:generate moq -out entity_storage_mock_test.go -pkg handlers ../storage EntityStorage

// EntityHandler handles entity CRUD requests
type EntityHandler struct {
	logger  *slog.Logger
	storage storage.EntityStorage
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(logger *slog.Logger, storage storage.EntityStorage) *EntityHandler {
	return &EntityHandler{
		logger:  logger,
		storage: storage,
	}
}

// Register adds the entity routes to r
func (h *EntityHandler) Register(r *mux.Router) {
	r.HandleFunc("/entities/{type}", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/entities/{type}", h.List).Methods(http.MethodGet)
	r.HandleFunc("/entities/{type}/{id:-?[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/entities/{type}/{id:-?[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/entities/{type}/{id:-?[0-9]+}", h.Delete).Methods(http.MethodDelete)
}

// Create обрабатывает POST /api/v1/entities/{type}
// Returns 201 for a new entity and 200 when the client_ref was seen before.
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t, ok := h.entityType(w, r)
	if !ok {
		return
	}

	var req api.CreateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ClientRef == "" {
		SendError(h.logger, w, "client_ref is required", http.StatusBadRequest)
		return
	}
	if !h.validData(w, r, t, req.Data) {
		return
	}

	id, created, err := h.storage.Create(ctx, &storage.Entity{
		Type:      string(t),
		ClientRef: req.ClientRef,
		Data:      req.Data,
	})
	if err != nil {
		if errors.Is(err, storage.ErrClientRefConflict) {
			SendError(h.logger, w, err.Error(), http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create entity", slog.String("type", string(t)), slog.Any("error", err))
		SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
		h.logger.InfoContext(ctx, "create replayed", slog.String("type", string(t)), slog.Int64("id", id))
	} else {
		h.logger.InfoContext(ctx, "entity created",
			slog.String("type", string(t)),
			slog.Int64("id", id),
			slog.String("subject", subject(r)))
	}

	sendJSON(h.logger, w, api.CreateEntityResponse{ID: id}, status)
}

// Update обрабатывает PUT /api/v1/entities/{type}/{id}
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t, id, ok := h.entityRef(w, r)
	if !ok {
		return
	}

	var req api.UpdateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update request", slog.Any("error", err))
		SendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !h.validData(w, r, t, req.Data) {
		return
	}

	if err := h.storage.Update(ctx, string(t), id, req.Data); err != nil {
		h.storageError(w, r, "update", err)
		return
	}

	h.logger.InfoContext(ctx, "entity updated", slog.String("type", string(t)), slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// Delete обрабатывает DELETE /api/v1/entities/{type}/{id}
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	t, id, ok := h.entityRef(w, r)
	if !ok {
		return
	}

	if err := h.storage.Delete(ctx, string(t), id); err != nil {
		h.storageError(w, r, "delete", err)
		return
	}

	h.logger.InfoContext(ctx, "entity deleted", slog.String("type", string(t)), slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// Get обрабатывает GET /api/v1/entities/{type}/{id}
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, id, ok := h.entityRef(w, r)
	if !ok {
		return
	}

	e, err := h.storage.Get(r.Context(), string(t), id)
	if err != nil {
		h.storageError(w, r, "get", err)
		return
	}

	sendJSON(h.logger, w, toResponse(e), http.StatusOK)
}

// List обрабатывает GET /api/v1/entities/{type}
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	t, ok := h.entityType(w, r)
	if !ok {
		return
	}

	entities, err := h.storage.List(r.Context(), string(t))
	if err != nil {
		h.storageError(w, r, "list", err)
		return
	}

	resp := make([]api.EntityResponse, 0, len(entities))
	for _, e := range entities {
		resp = append(resp, toResponse(e))
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

func toResponse(e *storage.Entity) api.EntityResponse {
	return api.EntityResponse{
		ID:        e.ID,
		Type:      e.Type,
		ClientRef: e.ClientRef,
		Data:      e.Data,
	}
}

// entityType разбирает {type}; неизвестный тип дает 404
func (h *EntityHandler) entityType(w http.ResponseWriter, r *http.Request) (models.EntityType, bool) {
	t, err := models.ParseEntityType(mux.Vars(r)["type"])
	if err != nil {
		SendError(h.logger, w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return t, true
}

// entityRef разбирает {type} и {id}; серверные id всегда положительные
func (h *EntityHandler) entityRef(w http.ResponseWriter, r *http.Request) (models.EntityType, int64, bool) {
	t, ok := h.entityType(w, r)
	if !ok {
		return "", 0, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		SendError(h.logger, w, "invalid id", http.StatusBadRequest)
		return "", 0, false
	}
	return t, id, true
}

// validData decodes data as an entity of type t and validates it.
// References to temporary client ids are rejected: they must be rewritten
// before the entity reaches the server.
func (h *EntityHandler) validData(w http.ResponseWriter, r *http.Request, t models.EntityType, data json.RawMessage) bool {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		SendError(h.logger, w, "data is required", http.StatusBadRequest)
		return false
	}

	entity, err := models.DecodeEntity(t, data)
	if err != nil {
		SendError(h.logger, w, "invalid entity data", http.StatusBadRequest)
		return false
	}

	if err := validation.ValidateEntity(entity); err != nil {
		h.logger.WarnContext(r.Context(), "entity rejected", slog.String("type", string(t)), slog.Any("error", err))
		SendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
		return false
	}
	if models.HasTemporaryReference(entity) {
		SendError(h.logger, w, "entity references a temporary id", http.StatusUnprocessableEntity)
		return false
	}
	return true
}

func (h *EntityHandler) storageError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, storage.ErrEntityNotFound) {
		SendError(h.logger, w, "entity not found", http.StatusNotFound)
		return
	}
	h.logger.ErrorContext(r.Context(), "storage operation failed", slog.String("op", op), slog.Any("error", err))
	SendError(h.logger, w, "internal server error", http.StatusInternalServerError)
}

func subject(r *http.Request) string {
	s, _ := GetSubject(r.Context())
	return s
}
