package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/utils"
)

// paymentStore is the slice of the database layer the payment endpoints use.
type paymentStore interface {
	GetPaymentByProviderRef(ctx context.Context, providerRef string) (*models.Payment, error)
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListPayments(ctx context.Context, orderID *uuid.UUID, opts models.PaginationOptions) ([]models.Payment, int64, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	AdjustUserCredits(ctx context.Context, userID uuid.UUID, delta int) error
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error
}

// PaymentHandler ingests provider callbacks and serves the admin payment
// views. Payment verification itself happens at the provider; we only
// record outcomes and credit accounts.
type PaymentHandler struct {
	db paymentStore
}

func NewPaymentHandler(db paymentStore) *PaymentHandler {
	return &PaymentHandler{db: db}
}

// Webhook godoc
// @Summary Ingest a payment provider callback
// @Description Record a provider-side payment event. A successful payment marks the order paid and credits the user in one transaction. Replayed callbacks with a known provider_ref are acknowledged without effect.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body models.PaymentWebhookRequest true "Normalized provider event"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/payments/webhook [post]
// @Security BearerAuth
func (h *PaymentHandler) Webhook(c *gin.Context) {
	ctx := c.Request.Context()

	var req models.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	// Providers retry callbacks; the provider_ref makes ingestion idempotent.
	// Settlement below is transactional, so a visible payment record implies
	// the order and credits were committed with it and the replay can be
	// acknowledged safely.
	existing, err := h.db.GetPaymentByProviderRef(ctx, req.ProviderRef)
	if err != nil {
		utils.LogError(ctx, "Failed to check payment dedup", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "payment_id": existing.ID, "duplicate": true})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
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

	now := time.Now()
	payment := &models.Payment{
		ID:          uuid.New(),
		OrderID:     orderID,
		Provider:    req.Provider,
		ProviderRef: req.ProviderRef,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Status == models.PaymentStatusSucceeded {
		// Record the payment, mark the order paid and grant the credits
		// atomically. A mid-flow failure leaves no payment record, so the
		// provider's retry runs the whole settlement again.
		err = h.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if err := h.db.CreatePayment(sessCtx, payment); err != nil {
				return err
			}
			if err := h.db.UpdateOrderStatus(sessCtx, orderID, models.OrderStatusPaid); err != nil {
				return err
			}
			return h.db.AdjustUserCredits(sessCtx, order.UserID, order.Credits)
		})
		if err != nil {
			utils.LogError(ctx, "Failed to settle payment", err, utils.Fields{
				"order_id": orderID.String(),
				"user_id":  order.UserID.String(),
			})
			errorResponse(c, utils.NewDatabaseError(err))
			return
		}

		utils.LogInfo(ctx, "Order paid and credits granted", utils.Fields{
			"order_id": orderID.String(),
			"user_id":  order.UserID.String(),
			"credits":  order.Credits,
		})
	} else {
		if err := h.db.CreatePayment(ctx, payment); err != nil {
			utils.LogError(ctx, "Failed to record payment", err)
			errorResponse(c, utils.NewDatabaseError(err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "payment_id": payment.ID})
}

// GetPayment godoc
// @Summary Get a payment by id
// @Tags payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/payments/{payment_id} [get]
// @Security BearerAuth
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		errorResponse(c, utils.NewValidationError("Invalid payment id", nil))
		return
	}

	payment, err := h.db.GetPaymentByID(ctx, paymentID)
	if err != nil {
		utils.LogError(ctx, "Failed to get payment", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}
	if payment == nil {
		errorResponse(c, utils.NewPaymentNotFoundError(paymentID.String()))
		return
	}

	c.JSON(http.StatusOK, payment)
}

// ListPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param order_id query string false "Filter by order"
// @Success 200 {object} models.PaymentListResponse
// @Router /api/v1/payments [get]
// @Security BearerAuth
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	ctx := c.Request.Context()

	var orderFilter *uuid.UUID
	if raw := c.Query("order_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errorResponse(c, utils.NewValidationError("Invalid order id", nil))
			return
		}
		orderFilter = &id
	}

	opts := paginationFromQuery(c)
	payments, total, err := h.db.ListPayments(ctx, orderFilter, opts)
	if err != nil {
		utils.LogError(ctx, "Failed to list payments", err)
		errorResponse(c, utils.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, models.PaymentListResponse{
		Total:    int(total),
		Page:     opts.Page,
		Limit:    opts.Limit,
		Payments: payments,
	})
}
