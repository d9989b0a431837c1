package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/core"
	"gearhr/internal/domain/hr"
	"gearhr/internal/transport/http/api"
	"gearhr/internal/transport/http/middleware"
	"gearhr/internal/transport/http/shared"
)

type Handler struct {
	Auth     *auth.Service
	HR       *hr.Service
	Perms    middleware.PermissionStore
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(authService *auth.Service, hrService *hr.Service, perms middleware.PermissionStore, secret string, ttl time.Duration) *Handler {
	return &Handler{Auth: authService, HR: hrService, Perms: perms, Secret: secret, TokenTTL: ttl}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Get("/me", h.handleMe)
	r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Put("/auth/credentials/{userID}", h.handleSetCredential)
}

type loginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
}

type credentialRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req loginRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Required("userId", req.UserID, "is required")
	v.Required("password", req.Password, "is required")
	if v.Reject(w, reqID) {
		return
	}

	cred, err := h.Auth.Authenticate(r.Context(), req.UserID, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		slog.Warn("login failed", "userId", strings.TrimSpace(req.UserID), "requestId", reqID)
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid user id or password", reqID)
		return
	}
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}

	expiresAt := time.Now().Add(h.TokenTTL).UTC()
	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: cred.UserID, RoleName: cred.Role}, h.TokenTTL)
	if err != nil {
		slog.Error("token generation failed", "userId", cred.UserID, "err", err)
		api.Fail(w, http.StatusInternalServerError, "token_error", "could not issue token", reqID)
		return
	}
	api.Success(w, loginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		UserID:    cred.UserID,
		Role:      cred.Role,
	}, reqID)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var employee *core.Employee
	if emp, err := h.HR.GetEmployee(user.UserID); err == nil {
		core.FilterEmployeeFields(&emp, user.RoleName, true)
		employee = &emp
	}
	permissions := auth.RolePermissions[user.RoleName]

	api.Success(w, map[string]any{
		"user": map[string]string{
			"id":   user.UserID,
			"role": user.RoleName,
		},
		"permissions": permissions,
		"employee":    employee,
	}, reqID)
}

func (h *Handler) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req credentialRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Required("password", req.Password, "is required")
	v.Enum("role", req.Role, []string{auth.RoleAdmin, auth.RoleHR, auth.RoleManager, auth.RoleEmployee}, "must be Admin, HR, Manager or Employee")
	if v.Reject(w, reqID) {
		return
	}

	cred, err := h.Auth.SetCredential(r.Context(), chi.URLParam(r, "userID"), req.Password, req.Role, req.Email)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, cred, reqID)
}
