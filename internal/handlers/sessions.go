package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"booking-server/internal/config"
	"booking-server/internal/models"
	"booking-server/internal/store"
	"booking-server/internal/utils"
)

const refreshCookie = "refresh_token"

// SessionUsers finds users by credentials or token subject.
type SessionUsers interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

// RefreshTokens persists issued refresh tokens.
type RefreshTokens interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// SessionHandler handles authentication-related requests.
type SessionHandler struct {
	Users  SessionUsers
	Tokens RefreshTokens
	Cfg    *config.Config
	Log    zerolog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(users SessionUsers, tokens RefreshTokens, cfg *config.Config, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{Users: users, Tokens: tokens, Cfg: cfg, Log: log}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	AccessToken  string                `json:"token"`
	RefreshToken string                `json:"refreshToken"`
	User         *models.UserSanitized `json:"user,omitempty"`
}

// Store handles user login.
func (h *SessionHandler) Store(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "User not found")
		} else {
			respondError(c, h.Log, err)
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Password does not match")
		return
	}

	access, refresh, err := h.issue(c, user)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	sanitized := user.Sanitize()
	utils.Success(c, "Login successful", SessionResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         &sanitized,
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Refresh rotates a refresh token and issues a new access token.
func (h *SessionHandler) Refresh(c *gin.Context) {
	token, ok := h.refreshToken(c)
	if !ok {
		return
	}

	claims, err := utils.ValidateToken(token, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	ctx := c.Request.Context()
	stored, err := h.Tokens.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			respondError(c, h.Log, err)
		}
		return
	}
	if stored.UserID != claims.UserID || !stored.Usable(time.Now()) {
		utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		return
	}

	user, err := h.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "User not found")
		} else {
			respondError(c, h.Log, err)
		}
		return
	}

	if err := h.Tokens.Revoke(ctx, token); err != nil {
		respondError(c, h.Log, err)
		return
	}

	access, refresh, err := h.issue(c, user)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	utils.Success(c, "Access token refreshed successfully", SessionResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Logout revokes the refresh token and clears its cookie.
func (h *SessionHandler) Logout(c *gin.Context) {
	token, ok := h.refreshToken(c)
	if !ok {
		return
	}

	// Unknown or already revoked tokens are fine for logout.
	if err := h.Tokens.Revoke(c.Request.Context(), token); err != nil {
		respondError(c, h.Log, err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", !h.Cfg.IsDevelopment(), true)
	utils.Success(c, "Logout successful", nil)
}

// refreshToken reads the token from the cookie, falling back to the body.
func (h *SessionHandler) refreshToken(c *gin.Context) (string, bool) {
	if token, err := c.Cookie(refreshCookie); err == nil && token != "" {
		return token, true
	}
	var req RefreshTokenRequest
	if !utils.BindAndValidate(c, &req) {
		return "", false
	}
	return req.RefreshToken, true
}

// issue signs a token pair, stores the refresh token and sets its cookie.
func (h *SessionHandler) issue(c *gin.Context, user *models.User) (string, string, error) {
	access, refresh, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		return "", "", err
	}

	ttl := time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour
	err = h.Tokens.Create(c.Request.Context(), &models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(ttl),
	})
	if err != nil {
		return "", "", err
	}

	c.SetCookie(refreshCookie, refresh, int(ttl.Seconds()), "/", "", !h.Cfg.IsDevelopment(), true)
	return access, refresh, nil
}
