package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/recapio/recapio/internal/models"
)

func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if _, err := m.users.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (m *MongoDB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := m.users.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	filter := bson.M{"email": strings.ToLower(strings.TrimSpace(email))}
	err := m.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (m *MongoDB) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	update := bson.M{"$set": bson.M{
		"name":          user.Name,
		"surname":       user.Surname,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"status":        user.Status,
		"roles":         user.Roles,
		"credits":       user.Credits,
		"updated_at":    user.UpdatedAt,
	}}

	result, err := m.users.UpdateOne(ctx, bson.M{"id": user.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AdjustUserCredits atomically changes a user's credit balance. A negative
// delta fails when the balance would go below zero.
func (m *MongoDB) AdjustUserCredits(ctx context.Context, userID uuid.UUID, delta int) error {
	filter := bson.M{"id": userID}
	if delta < 0 {
		filter["credits"] = bson.M{"$gte": -delta}
	}

	result, err := m.users.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"credits": delta},
		"$set": bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to adjust credits: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteUser soft-deletes by default; hard delete removes the document.
func (m *MongoDB) DeleteUser(ctx context.Context, id uuid.UUID, hard bool) error {
	if hard {
		result, err := m.users.DeleteOne(ctx, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if result.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	}

	update := bson.M{"$set": bson.M{
		"status":     models.UserStatusDeleted,
		"updated_at": time.Now(),
	}}
	result, err := m.users.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *MongoDB) ListUsers(ctx context.Context, opts models.PaginationOptions) ([]models.User, int64, error) {
	filter := bson.M{"status": bson.M{"$ne": models.UserStatusDeleted}}

	total, err := m.users.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if opts.Sort == "created_at_asc" {
		sort = bson.D{{Key: "created_at", Value: 1}}
	}

	cursor, err := m.users.Find(ctx, filter, paginationFindOptions(opts.Page, opts.Limit, sort))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, total, nil
}
