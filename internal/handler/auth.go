package handler

import (
	"net/http"

	"github.com/wayne-14e/Lexicon-AI/pkg/validator"
)

type authRequest struct {
	Username string `json:"username" validate:"required"`
}

func validateRequest(dst interface{}) error {
	return validator.ValidateStruct(dst)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.controller.Register(req.Username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.controller.Login(req.Username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Logout(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.controller.State())
}
