package handlers

import (
	"net/http"
	"time"

	"github.com/devtrack/engine/internal/api/types"
	"github.com/devtrack/engine/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	validate Validator
	ttl      time.Duration
}

func NewAuthHandler(auth services.AuthService, v Validator, ttl time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v, ttl: ttl}
}

// Register godoc
// @Summary  Register a user
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body types.RegisterRequest true "new user"
// @Success  201 {object} types.APIResponse
// @Failure  400 {object} types.APIResponse
// @Failure  409 {object} types.APIResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(h.validate, req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.auth.Register(r.Context(), &services.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, u)
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body types.LoginRequest true "credentials"
// @Success  200 {object} types.APIResponse{data=types.LoginResponse}
// @Failure  401 {object} types.APIResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := check(h.validate, req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, types.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.ttl / time.Second),
		User:        u,
	})
}

// Logout is stateless: clients drop the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true})
}

// Me godoc
// @Summary  Current user
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} types.APIResponse
// @Router   /users/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	u, err := h.auth.GetUser(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u)
}
