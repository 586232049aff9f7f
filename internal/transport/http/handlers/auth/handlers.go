package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ats/internal/domain/auth"
	"ats/internal/transport/http/api"
	"ats/internal/transport/http/middleware"
)

type Handler struct {
	Users    *auth.Store
	Secret   string
	TokenTTL time.Duration
}

func NewHandler(users *auth.Store, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{Users: users, Secret: secret, TokenTTL: tokenTTL}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userInfo  `json:"user"`
}

type userInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", requestID)
		return
	}

	user, err := h.Users.FindActiveUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
		return
	}

	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "failed to issue token", requestID)
		return
	}

	api.Success(w, loginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.TokenTTL),
		User: userInfo{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	}, requestID)
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	exists, err := h.Users.UserExists(r.Context(), user.UserID)
	if err != nil || !exists {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	}

	api.Success(w, map[string]string{
		"id":   user.UserID,
		"name": user.Name,
		"role": user.Role,
	}, requestID)
}
