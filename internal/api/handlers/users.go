package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/database"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/services/auth"
	"github.com/recapio/recapio/internal/utils"
)

// UserHandler serves the admin user management endpoints.
type UserHandler struct {
	db       *database.MongoDB
	sessions *auth.SessionService
}

func NewUserHandler(db *database.MongoDB, sessions *auth.SessionService) *UserHandler {
	return &UserHandler{
		db:       db,
		sessions: sessions,
	}
}

// CreateUser godoc
// @Summary Create a user account
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/users [post]
// @Security BearerAuth
func (h *UserHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	existing, err := h.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		utils.LogError(ctx, "Failed to check existing user", err)
		errorResponse(c, utils.NewInternalError())
		return
	}
	if existing != nil {
		errorResponse(c, utils.NewErrorWithDetails(
			utils.ErrorCodeValidationError,
			"A user with this email already exists",
			http.StatusConflict,
			map[string]interface{}{"email": req.Email},
		))
		return
	}

	hash, err := utils.ValidateAndHashPassword(req.Password)
	if err != nil {
		errorResponse(c, utils.NewValidationError(err.Error(), nil))
		return
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{"customer"}
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		PasswordHash: &hash,
		Status:       models.UserStatusActive,
		Roles:        roles,
		Credits:      0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.db.CreateUser(ctx, user); err != nil {
		utils.LogError(ctx, "Failed to create user", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/users/{user_id} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid user id", nil))
		return
	}

	user, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		utils.LogError(ctx, "Failed to get user", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, utils.NewUserNotFoundError(userID.String()))
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.UserListResponse
// @Router /api/v1/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	opts := paginationFromQuery(c)
	users, total, err := h.db.ListUsers(ctx, opts)
	if err != nil {
		utils.LogError(ctx, "Failed to list users", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{
		Total: int(total),
		Page:  opts.Page,
		Limit: opts.Limit,
		Users: users,
	})
}

// UpdateUser godoc
// @Summary Update a user
// @Description Partially update profile fields, status or credit balance
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/users/{user_id} [put]
// @Security BearerAuth
func (h *UserHandler) UpdateUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid user id", nil))
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	user, err := h.db.GetUserByID(ctx, userID)
	if err != nil {
		utils.LogError(ctx, "Failed to get user", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if user == nil {
		errorResponse(c, utils.NewUserNotFoundError(userID.String()))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Credits != nil {
		user.Credits = *req.Credits
	}

	if err := h.db.UpdateUser(ctx, user); err != nil {
		utils.LogError(ctx, "Failed to update user", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	// Suspending an account kills its sessions immediately.
	if req.Status != nil && *req.Status != models.UserStatusActive {
		if err := h.sessions.RevokeUserSessions(ctx, userID, "account_suspended"); err != nil {
			utils.LogError(ctx, "Failed to revoke sessions of suspended user", err)
		}
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Soft-deletes by default; pass hard=true to remove the document
// @Tags users
// @Produce json
// @Param user_id path string true "User ID"
// @Param hard query bool false "Hard delete" default(false)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/users/{user_id} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid user id", nil))
		return
	}

	hard := c.DefaultQuery("hard", "false") == "true"

	if err := h.db.DeleteUser(ctx, userID, hard); err != nil {
		utils.LogError(ctx, "Failed to delete user", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	if hard {
		// The account is gone; its session documents go with it.
		if err := h.db.DeleteUserSessions(ctx, userID); err != nil {
			utils.LogError(ctx, "Failed to delete sessions of deleted user", err)
		}
	} else if err := h.sessions.RevokeUserSessions(ctx, userID, "account_deleted"); err != nil {
		utils.LogError(ctx, "Failed to revoke sessions of deleted user", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
