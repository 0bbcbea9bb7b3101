package handler

import (
	"net/http"
)

type notesRequest struct {
	Text string `json:"text"`
}

type shareRequest struct {
	Token string `json:"token" validate:"required"`
}

func (h *Handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.controller.Notes()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"text": notes})
}

// handleQueueNotes accepts a keystroke snapshot. The write is debounced
// server-side, so the handler returns before anything is persisted.
func (h *Handler) handleQueueNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.controller.QueueNotes(req.Text); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleClearNotes(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.ClearNotes(); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleShareToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.controller.ShareToken()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) handleOpenShared(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.controller.OpenShared(req.Token); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid share link."})
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}
