package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/database"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/utils"
)

// OrderHandler serves the admin order management endpoints.
type OrderHandler struct {
	db *database.MongoDB
}

func NewOrderHandler(db *database.MongoDB) *OrderHandler {
	return &OrderHandler{db: db}
}

// CreateOrder godoc
// @Summary Create an order
// @Description Create a pending credit purchase for a user
// @Tags orders
// @Accept json
// @Produce json
// @Param request body models.CreateOrderRequest true "Order data"
// @Success 201 {object} models.Order
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/orders [post]
// @Security BearerAuth
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	userID, err := uuid.Parse(req.UserID)
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

	now := time.Now()
	order := &models.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Plan:      req.Plan,
		Credits:   req.Credits,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.db.CreateOrder(ctx, order); err != nil {
		utils.LogError(ctx, "Failed to create order", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder godoc
// @Summary Get an order by id
// @Tags orders
// @Produce json
// @Param order_id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/orders/{order_id} [get]
// @Security BearerAuth
func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid order id", nil))
		return
	}

	order, err := h.db.GetOrderByID(ctx, orderID)
	if err != nil {
		utils.LogError(ctx, "Failed to get order", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if order == nil {
		errorResponse(c, utils.NewOrderNotFoundError(orderID.String()))
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query string false "Filter by user"
// @Success 200 {object} models.OrderListResponse
// @Router /api/v1/orders [get]
// @Security BearerAuth
func (h *OrderHandler) ListOrders(c *gin.Context) {
	ctx := c.Request.Context()

	var userFilter *uuid.UUID
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, utils.NewValidationError("Invalid user id", nil))
			return
		}
		userFilter = &id
	}

	opts := paginationFromQuery(c)
	orders, total, err := h.db.ListOrders(ctx, userFilter, opts)
	if err != nil {
		utils.LogError(ctx, "Failed to list orders", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{
		Total:  int(total),
		Page:   opts.Page,
		Limit:  opts.Limit,
		Orders: orders,
	})
}

// UpdateOrderStatus godoc
// @Summary Update an order's status
// @Description Manual status override for support cases, e.g. cancelling a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Param order_id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/orders/{order_id}/status [put]
// @Security BearerAuth
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, err := uuid.Parse(c.Param("order_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid order id", nil))
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	order, err := h.db.GetOrderByID(ctx, orderID)
	if err != nil {
		utils.LogError(ctx, "Failed to get order", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if order == nil {
		errorResponse(c, utils.NewOrderNotFoundError(orderID.String()))
		return
	}

	if err := h.db.UpdateOrderStatus(ctx, orderID, req.Status); err != nil {
		utils.LogError(ctx, "Failed to update order status", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "status": req.Status})
}
