package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/taskfile-api/internal/importer"
	"github.com/BuzzLyutic/taskfile-api/internal/service"
	"github.com/BuzzLyutic/taskfile-api/pkg/respond"
)

const msgFieldsRequired = "title or description are required"

type TaskHandler struct {
	service  *service.TaskService
	importer *importer.Importer
	logger   *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, imp *importer.Importer, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service:  srv,
		importer: imp,
		logger:   logger,
	}
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if _, err := h.service.Create(r.Context(), req.Title, req.Description); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	tasks := h.service.List(r.Context(), search)
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.Update(r.Context(), id, req.Title, req.Description); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.ToggleComplete(r.Context(), id); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import запускает конвейер импорта из настроенного CSV-файла.
// Строки до первой невалидной остаются в хранилище.
func (h *TaskHandler) Import(w http.ResponseWriter, r *http.Request) {
	if _, err := h.importer.Run(r.Context()); err != nil {
		h.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request) (taskRequest, bool) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return taskRequest{}, false
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return taskRequest{}, false
	}
	return req, true
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		w.WriteHeader(http.StatusNotFound) // тело пустое по контракту API
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, msgFieldsRequired)
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
