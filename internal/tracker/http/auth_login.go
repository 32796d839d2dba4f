package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// LoginRequest carries the credentials for password login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the minted access token alongside the user's
// public profile.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// ServeHTTP handles password login.
//
//	@Summary		Log in with username and password
//	@Description	Verifies credentials and returns a JWT access token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest			true	"Credentials"
//	@Success		200		{object}	LoginResponse			"Access token and user profile"
//	@Failure		400		{object}	httpx.ErrorResponse		"Malformed request body"
//	@Failure		401		{object}	httpx.ErrorResponse		"Invalid username or password"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	user, token, err := h.AuthService.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        toUserResponse(user),
	})
}
