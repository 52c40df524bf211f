package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopapp-dev/shopapp/app/helpers"
	"github.com/shopapp-dev/shopapp/app/services"
	"github.com/shopapp-dev/shopapp/app/utils/sessions"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authSvc *services.AuthService
	render  *render.Render
	log     *zap.SugaredLogger
}

func NewAuthHandler(authSvc *services.AuthService, rnd *render.Render, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authSvc: authSvc,
		render:  rnd,
		log:     log,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	user, err := h.authSvc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.render.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if fields := helpers.ValidateStruct(req); fields != nil {
		writeValidationErrors(h.render, w, fields)
		return
	}

	user, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(h.render, w, err)
		return
	}

	if err := sessions.SetUserID(w, r, user.ID); err != nil {
		h.log.Errorw("failed to save session", "user_id", user.ID, "error", err)
		h.render.JSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to start session"})
		return
	}
	h.render.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := sessions.Clear(w, r); err != nil {
		h.log.Warnw("failed to clear session", "error", err)
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
