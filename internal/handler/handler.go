// Package handler exposes the journal over a JSON HTTP API consumed by
// the single-page shell.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/app"
	"github.com/wayne-14e/Lexicon-AI/internal/middleware"
	"github.com/wayne-14e/Lexicon-AI/internal/service"
)

// Handler manages all HTTP interactions
type Handler struct {
	controller *app.Controller
	logger     *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(controller *app.Controller, logger *zap.Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger,
	}
}

// RegisterRoutes mounts the API. Routes that mutate a profile's data
// sit behind the session guard; state, auth and shared-view routes are
// public.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Logging(h.logger))

	api.HandleFunc("/auth/register", h.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/state", h.handleState).Methods(http.MethodGet)
	api.HandleFunc("/back", h.handleBack).Methods(http.MethodPost)
	api.HandleFunc("/shared", h.handleOpenShared).Methods(http.MethodPost)
	api.HandleFunc("/speak", h.handleSpeak).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(middleware.RequireSession(h.controller, h.logger))

	private.HandleFunc("/create/begin", h.handleBeginCreate).Methods(http.MethodPost)
	private.HandleFunc("/create/cancel", h.handleCancelCreate).Methods(http.MethodPost)
	private.HandleFunc("/tables", h.handleCreateTable).Methods(http.MethodPost)
	private.HandleFunc("/tables/{id}/open", h.handleOpenTable).Methods(http.MethodPost)
	private.HandleFunc("/tables/{id}", h.handleDeleteTable).Methods(http.MethodDelete)
	private.HandleFunc("/entries/{entryId}", h.handleRemoveEntry).Methods(http.MethodDelete)
	private.HandleFunc("/entries/{entryId}/regenerate", h.handleRegenerateEntry).Methods(http.MethodPost)
	private.HandleFunc("/study/start", h.handleStartStudy).Methods(http.MethodPost)
	private.HandleFunc("/study/judge", h.handleJudge).Methods(http.MethodPost)
	private.HandleFunc("/context", h.handleEnterContext).Methods(http.MethodPost)
	private.HandleFunc("/share", h.handleShareToken).Methods(http.MethodGet)
	private.HandleFunc("/notes", h.handleNotes).Methods(http.MethodGet)
	private.HandleFunc("/notes", h.handleQueueNotes).Methods(http.MethodPut)
	private.HandleFunc("/notes", h.handleClearNotes).Methods(http.MethodDelete)

	// Export works for the signed-in owner and for the shared view
	api.HandleFunc("/tables/{id}/export/html", h.handleExportHTML).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id}/export/xlsx", h.handleExportXLSX).Methods(http.MethodGet)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	h.controller.Back()
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps domain failures onto statuses and the exact messages
// the shell displays
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		status = http.StatusNotFound
		message = "Account not found. Please establish account."
	case errors.Is(err, service.ErrIdentityExists):
		status = http.StatusConflict
		message = "Identity already exists. Please sign in."
	case errors.Is(err, service.ErrEmptyUsername), errors.Is(err, service.ErrEmptyWordList):
		status = http.StatusBadRequest
		message = "Error: Please enter at least one word."
		if errors.Is(err, service.ErrEmptyUsername) {
			message = "Please enter your name."
		}
	case errors.Is(err, app.ErrNotSignedIn):
		status = http.StatusUnauthorized
		message = "Authentication required."
	case errors.Is(err, app.ErrNoActiveTable), errors.Is(err, app.ErrTableNotFound):
		status = http.StatusNotFound
	case errors.Is(err, app.ErrSharedReadOnly):
		status = http.StatusForbidden
	default:
		message = "Internal server error."
		h.logger.Error("Request failed", zap.Error(err))
	}

	h.writeJSON(w, status, map[string]string{"error": message})
}

// decode parses and validates a JSON request body
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return false
	}
	if err := validateRequest(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}
