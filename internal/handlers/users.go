package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"appointments-server/internal/cache"
	"appointments-server/internal/config"
	"appointments-server/internal/middleware"
	"appointments-server/internal/models"
	"appointments-server/internal/store"
	"appointments-server/internal/utils"
)

// UserHandler handles registration and profile updates.
type UserHandler struct {
	Users store.UserStore
	Files store.FileStore
	Cache cache.Cache
	Cfg   *config.Config
	Log   *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users store.UserStore, files store.FileStore, c cache.Cache, cfg *config.Config, log *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Files: files, Cache: c, Cfg: cfg, Log: log}
}

// CreateUserRequest represents the request body for registration.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Provider bool   `json:"provider"`
}

// UpdateUserRequest represents the request body for a profile update.
// Changing the password requires the current one.
type UpdateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	AvatarID        *uint  `json:"avatar_id"`
	OldPassword     string `json:"old_password" validate:"required_with=Password"`
	Password        string `json:"password" validate:"required_with=OldPassword,omitempty,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required_with=Password,eqfield=Password"`
}

// CreateUser handles user registration.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Provider: req.Provider,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.BadRequest(c, "User already exists")
			return
		}
		h.Log.Error("failed to create user", zap.Error(err))
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	h.invalidateProviders(c.Request.Context())
	utils.Created(c, "User registered successfully", user.Sanitize(h.Cfg.AppURL))
}

// UpdateUser handles updating the authenticated user's profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	ctx := c.Request.Context()

	user, err := h.Users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		utils.NotFound(c, "User not found")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch user")
		return
	}

	if req.Email != "" && req.Email != user.Email {
		existing, err := h.Users.FindByEmail(ctx, req.Email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			utils.InternalServerError(c, "Failed to verify email")
			return
		}
		if existing != nil {
			utils.BadRequest(c, "User already exists")
			return
		}
		user.Email = req.Email
	}

	if req.OldPassword != "" {
		if !user.CheckPassword(req.OldPassword) {
			utils.Unauthorized(c, "Password does not match")
			return
		}
		if err := user.SetPassword(req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password")
			return
		}
	}

	if req.Name != "" {
		user.Name = req.Name
	}

	if req.AvatarID != nil {
		if _, err := h.Files.FindByID(ctx, *req.AvatarID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.BadRequest(c, "Avatar file not found")
			} else {
				utils.InternalServerError(c, "Failed to verify avatar")
			}
			return
		}
		user.AvatarID = req.AvatarID
		user.Avatar = nil
	}

	if err := h.Users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.BadRequest(c, "User already exists")
			return
		}
		h.Log.Error("failed to update user", zap.Uint("user_id", userID), zap.Error(err))
		utils.InternalServerError(c, "Failed to update user")
		return
	}
	h.invalidateProviders(ctx)

	updated, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch user")
		return
	}
	utils.Success(c, "User updated successfully", updated.Sanitize(h.Cfg.AppURL))
}

// invalidateProviders drops the cached provider listing. A stale cache
// only delays visibility, so failures are logged.
func (h *UserHandler) invalidateProviders(ctx context.Context) {
	if err := h.Cache.Delete(ctx, cache.ProvidersKey); err != nil {
		h.Log.Warn("failed to invalidate providers cache", zap.Error(err))
	}
}
