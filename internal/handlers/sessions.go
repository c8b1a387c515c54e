package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"appointments-server/internal/config"
	"appointments-server/internal/models"
	"appointments-server/internal/store"
	"appointments-server/internal/utils"
)

// SessionHandler issues session tokens.
type SessionHandler struct {
	Users store.UserStore
	Cfg   *config.Config
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(users store.UserStore, cfg *config.Config) *SessionHandler {
	return &SessionHandler{Users: users, Cfg: cfg}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	User  models.UserSanitized `json:"user"`
	Token string               `json:"token"`
}

// CreateSession handles user login.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Failed to fetch user")
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token")
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		User:  user.Sanitize(h.Cfg.AppURL),
		Token: token,
	})
}
