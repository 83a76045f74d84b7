package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/models"
)

func (m *MongoDB) CreatePayment(ctx context.Context, payment *models.Payment) error {
	now := time.Now()
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := m.payments.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

func (m *MongoDB) GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := m.payments.FindOne(ctx, bson.M{"id": id}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// GetPaymentByProviderRef deduplicates webhook deliveries: providers retry
// callbacks and each retry carries the same reference.
func (m *MongoDB) GetPaymentByProviderRef(ctx context.Context, providerRef string) (*models.Payment, error) {
	var payment models.Payment
	err := m.payments.FindOne(ctx, bson.M{"provider_ref": providerRef}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment by provider ref: %w", err)
	}
	return &payment, nil
}

func (m *MongoDB) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}}

	result, err := m.payments.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *MongoDB) ListPayments(ctx context.Context, orderID *uuid.UUID, opts models.PaginationOptions) ([]models.Payment, int64, error) {
	filter := bson.M{}
	if orderID != nil {
		filter["order_id"] = *orderID
	}

	total, err := m.payments.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if opts.Sort == "created_at_asc" {
		sort = bson.D{{Key: "created_at", Value: 1}}
	}

	cursor, err := m.payments.Find(ctx, filter, paginationFindOptions(opts.Page, opts.Limit, sort))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode payments: %w", err)
	}

	return payments, total, nil
}
