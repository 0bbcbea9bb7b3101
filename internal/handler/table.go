package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wayne-14e/Lexicon-AI/internal/app"
	"github.com/wayne-14e/Lexicon-AI/internal/domain"
	"github.com/wayne-14e/Lexicon-AI/internal/export"
	"github.com/wayne-14e/Lexicon-AI/internal/service"
)

type createTableRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Words       string `json:"words" validate:"required"`
	Links       string `json:"links"`
	ExistingID  string `json:"existingId"`
}

type judgeRequest struct {
	EntryID string `json:"entryId" validate:"required"`
	Known   *bool  `json:"known" validate:"required"`
}

type regenerateRequest struct {
	Word string `json:"word" validate:"required"`
}

func (h *Handler) handleBeginCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.BeginCreate(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleCancelCreate(w http.ResponseWriter, r *http.Request) {
	h.controller.CancelCreate()
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if !h.decode(w, r, &req) {
		return
	}

	input := service.ComposeInput{
		Title:       req.Title,
		Description: req.Description,
		Words:       req.Words,
		Links:       req.Links,
	}
	if req.ExistingID != "" {
		existing, err := h.findTable(req.ExistingID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		input.Existing = existing
	}

	table, err := h.controller.CreateTable(r.Context(), input)
	if err != nil {
		h.writeGenerationError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, table)
}

func (h *Handler) handleOpenTable(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.OpenTable(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteTable(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.RemoveEntry(mux.Vars(r)["entryId"]); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleRegenerateEntry(w http.ResponseWriter, r *http.Request) {
	var req regenerateRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.controller.RegenerateEntry(r.Context(), mux.Vars(r)["entryId"], req.Word); err != nil {
		h.writeGenerationError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	cards, err := h.controller.StartStudy()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, cards)
}

func (h *Handler) handleJudge(w http.ResponseWriter, r *http.Request) {
	var req judgeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.controller.Judge(req.EntryID, *req.Known); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleEnterContext(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.EnterContextLearning(r.Context()); err != nil {
		h.writeGenerationError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}

func (h *Handler) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	table, err := h.findTable(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.HTMLFilename(*table)))
	if err := export.WriteHTML(w, *table); err != nil {
		h.logger.Error("HTML export failed", zap.Error(err))
	}
}

func (h *Handler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	table, err := h.findTable(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.XLSXFilename(*table)))
	if err := export.WriteXLSX(w, *table); err != nil {
		h.logger.Error("Excel export failed", zap.Error(err))
	}
}

func (h *Handler) handleSpeak(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing word parameter."})
		return
	}

	audio := h.controller.Speak(r.Context(), word)
	if audio == nil {
		h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Pronunciation unavailable."})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(audio)
}

// findTable resolves an id against the loaded tables, falling back to
// the active table so the shared view can export
func (h *Handler) findTable(id string) (*domain.VocabTable, error) {
	state := h.controller.State()
	for i := range state.Tables {
		if state.Tables[i].ID == id {
			return &state.Tables[i], nil
		}
	}
	if state.ActiveTable != nil && state.ActiveTable.ID == id {
		return state.ActiveTable, nil
	}
	return nil, app.ErrTableNotFound
}

// writeGenerationError keeps sentinel errors on their mapped statuses
// and surfaces everything else as an AI gateway failure
func (h *Handler) writeGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrEmptyWordList) ||
		errors.Is(err, app.ErrNotSignedIn) ||
		errors.Is(err, app.ErrNoActiveTable) ||
		errors.Is(err, app.ErrTableNotFound) ||
		errors.Is(err, app.ErrSharedReadOnly) {
		h.writeError(w, err)
		return
	}
	h.logger.Error("Generation failed", zap.Error(err))
	h.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "System Error: Failed to connect to AI engine."})
}
