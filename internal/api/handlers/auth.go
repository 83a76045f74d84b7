package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/database"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/services/auth"
	"github.com/recapio/recapio/internal/utils"
)

type AuthHandler struct {
	db         *database.MongoDB
	jwtService *auth.JWTService
	sessions   *auth.SessionService
}

func NewAuthHandler(db *database.MongoDB, jwtService *auth.JWTService, sessions *auth.SessionService) *AuthHandler {
	return &AuthHandler{
		db:         db,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Login godoc
// @Summary Authenticate with email and password
// @Description Verify credentials and start a session, returning an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	user, err := h.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		utils.LogError(ctx, "Failed to look up user", err)
		errorResponse(c, utils.NewInternalError())
		return
	}
	if user == nil || user.PasswordHash == nil || user.Status != models.UserStatusActive {
		errorResponse(c, utils.NewUnauthorizedError("Invalid email or password"))
		return
	}

	if err := utils.VerifyPassword(req.Password, *user.PasswordHash); err != nil {
		utils.LogWarn(ctx, "Failed login attempt", utils.Fields{"email": req.Email, "ip": c.ClientIP()})
		errorResponse(c, utils.NewUnauthorizedError("Invalid email or password"))
		return
	}

	// Hashes created with an older bcrypt cost are upgraded on the fly
	// while the plaintext is at hand.
	if utils.NeedsRehash(*user.PasswordHash) {
		if hash, err := utils.HashPassword(req.Password); err == nil {
			user.PasswordHash = &hash
			if err := h.db.UpdateUser(ctx, user); err != nil {
				utils.LogWarn(ctx, "Failed to upgrade password hash", utils.Fields{"user_id": user.ID.String()})
			}
		}
	}

	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")
	tokens, _, err := h.sessions.CreateSession(ctx, user, &ip, &userAgent)
	if err != nil {
		utils.LogError(ctx, "Failed to create session", err)
		errorResponse(c, utils.NewInternalError())
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Tokens:  tokens,
		User:    user,
	})
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Description Rotates the refresh token; the previous one is invalidated
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest true "Refresh token"
// @Success 200 {object} models.TokenPair
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	tokens, err := h.sessions.RefreshSession(ctx, req.RefreshToken)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to refresh session", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Logout godoc
// @Summary End the current session
// @Description Revokes the session and blacklists its tokens
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := uuid.Parse(c.GetString("session_id"))
	if err != nil {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	if err := h.sessions.RevokeSession(ctx, sessionID, "logout"); err != nil {
		utils.LogError(ctx, "Failed to revoke session", err)
		errorResponse(c, utils.NewInternalError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Verify godoc
// @Summary Verify the current access token
// @Description Returns the identity bound to the presented token
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/auth/verify [get]
// @Security BearerAuth
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid":   true,
		"user_id": c.GetString("user_id"),
		"email":   c.GetString("user_email"),
	})
}

// Sessions godoc
// @Summary List the caller's active sessions
// @Tags auth
// @Produce json
// @Success 200 {array} models.SessionInfo
// @Router /api/v1/auth/sessions [get]
// @Security BearerAuth
func (h *AuthHandler) Sessions(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	currentSessionID, _ := uuid.Parse(c.GetString("session_id"))

	sessions, err := h.sessions.GetUserSessions(ctx, userID, currentSessionID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			errorResponse(c, appErr)
		} else {
			utils.LogError(ctx, "Failed to list sessions", err)
			errorResponse(c, utils.NewInternalError())
		}
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// RevokeSession godoc
// @Summary Revoke one of the caller's sessions
// @Tags auth
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/auth/sessions/{session_id} [delete]
// @Security BearerAuth
func (h *AuthHandler) RevokeSession(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := currentUserID(c)
	if !ok {
		errorResponse(c, utils.NewUnauthorizedError(""))
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid session id", nil))
		return
	}

	// Only the owner may revoke a session this way.
	session, err := h.db.GetSessionByID(ctx, sessionID)
	if err != nil {
		utils.LogError(ctx, "Failed to look up session", err)
		errorResponse(c, utils.NewInternalError())
		return
	}
	if session == nil || session.UserID != userID {
		errorResponse(c, utils.NewValidationError("Session not found", nil))
		return
	}

	if err := h.sessions.RevokeSession(ctx, sessionID, "revoked_by_user"); err != nil {
		utils.LogError(ctx, "Failed to revoke session", err)
		errorResponse(c, utils.NewInternalError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
