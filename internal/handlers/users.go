package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/models"
	"booking-server/internal/store"
	"booking-server/internal/utils"
)

// UserRepository stores user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

// FileFinder resolves uploaded files.
type FileFinder interface {
	FindByID(ctx context.Context, id uint) (*models.File, error)
}

// SessionRevoker ends every session of a user.
type SessionRevoker interface {
	RevokeAllForUser(ctx context.Context, userID uint) error
}

// UserHandler handles account registration and profile updates.
type UserHandler struct {
	Users    UserRepository
	Files    FileFinder
	Sessions SessionRevoker
	Log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserRepository, files FileFinder, sessions SessionRevoker, log zerolog.Logger) *UserHandler {
	return &UserHandler{Users: users, Files: files, Sessions: sessions, Log: log}
}

// CreateUserRequest represents the request body for user registration.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Provider bool   `json:"provider"`
}

// Store registers a user, optionally as a provider.
func (h *UserHandler) Store(c *gin.Context) {
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
		respondError(c, h.Log, err)
		return
	}

	if err := h.Users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.BadRequest(c, "User already exists")
			return
		}
		respondError(c, h.Log, err)
		return
	}

	utils.Created(c, "User registered successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for a profile update.
// Changing the password requires the current one.
type UpdateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	OldPassword     string `json:"oldPassword" validate:"required_with=Password"`
	Password        string `json:"password" validate:"omitempty,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required_with=Password,eqfield=Password"`
	AvatarID        *uint  `json:"avatar_id"`
}

// Update changes the authenticated user's profile.
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			respondError(c, h.Log, err)
		}
		return
	}

	if req.OldPassword != "" && !user.CheckPassword(req.OldPassword) {
		utils.Unauthorized(c, "Password does not match")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			respondError(c, h.Log, err)
			return
		}
	}
	if req.AvatarID != nil {
		avatar, err := h.Files.FindByID(ctx, *req.AvatarID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.BadRequest(c, "Avatar does not exist")
			} else {
				respondError(c, h.Log, err)
			}
			return
		}
		user.AvatarID = &avatar.ID
		user.Avatar = avatar
	}

	if err := h.Users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.BadRequest(c, "User already exists")
			return
		}
		respondError(c, h.Log, err)
		return
	}

	// A new password logs out every other session.
	if req.Password != "" {
		if err := h.Sessions.RevokeAllForUser(ctx, user.ID); err != nil {
			respondError(c, h.Log, err)
			return
		}
	}

	utils.Success(c, "Profile updated successfully", user.Sanitize())
}
