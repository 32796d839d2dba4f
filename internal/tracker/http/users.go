package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clockin-dev/clockin/internal/tracker/domain"
	"github.com/clockin-dev/clockin/internal/tracker/service"
	"github.com/clockin-dev/clockin/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// CreateUserRequest registers a new employee. When password is empty a
// random one is generated and returned once in the response.
type CreateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// CreateUserResponse echoes the created user. GeneratedPassword is set
// only when the server generated one; it is never stored in plain text.
type CreateUserResponse struct {
	User              UserResponse `json:"user"`
	GeneratedPassword string       `json:"generated_password,omitempty"`
}

// HandleCreate registers a new employee account.
//
//	@Summary		Create a user
//	@Description	Registers a new employee. Admin only. When no password is supplied a random one is generated and returned once.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateUserRequest	true	"New user details"
//	@Success		201		{object}	CreateUserResponse	"The created user"
//	@Failure		400		{object}	httpx.ErrorResponse	"Malformed request or invalid role"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	httpx.ErrorResponse	"Caller is not an admin"
//	@Failure		409		{object}	httpx.ErrorResponse	"Username already exists"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "request body must be valid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)
	if req.Username == "" || req.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and name are required")
		return
	}
	if req.Role == "" {
		req.Role = string(domain.RoleUser)
	}

	user, generated, err := h.UserService.CreateUser(ctx, req.Username, req.Name, req.Password, domain.Role(req.Role))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, CreateUserResponse{
		User:              toUserResponse(user),
		GeneratedPassword: generated,
	})
}

// HandleList returns all employee accounts.
//
//	@Summary		List employees
//	@Description	Returns every employee account with its presence flags and lifetime total. Admin only.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		UserResponse		"Employee accounts"
//	@Failure		401	{object}	httpx.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	httpx.ErrorResponse	"Caller is not an admin"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListEmployees(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
