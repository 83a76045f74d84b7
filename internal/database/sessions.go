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

func (m *MongoDB) CreateSession(ctx context.Context, session *models.Session) error {
	if _, err := m.sessions.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (m *MongoDB) GetSessionByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := m.sessions.FindOne(ctx, bson.M{"id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (m *MongoDB) UpdateSession(ctx context.Context, session *models.Session) error {
	update := bson.M{"$set": bson.M{
		"refresh_token": session.RefreshToken,
		"is_active":     session.IsActive,
		"last_activity": session.LastActivity,
	}}

	result, err := m.sessions.UpdateOne(ctx, bson.M{"id": session.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *MongoDB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if _, err := m.sessions.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (m *MongoDB) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	if _, err := m.sessions.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (m *MongoDB) GetUserSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	filter := bson.M{
		"user_id":   userID,
		"is_active": true,
	}

	cursor, err := m.sessions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list user sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (m *MongoDB) UpdateSessionActivity(ctx context.Context, id uuid.UUID) error {
	update := bson.M{"$set": bson.M{"last_activity": time.Now()}}
	if _, err := m.sessions.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to update session activity: %w", err)
	}
	return nil
}

func (m *MongoDB) CreateTokenBlacklist(ctx context.Context, entry *models.TokenBlacklist) error {
	if _, err := m.blacklist.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert blacklist entry: %w", err)
	}
	return nil
}

func (m *MongoDB) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	count, err := m.blacklist.CountDocuments(ctx, bson.M{"token_jti": jti})
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return count > 0, nil
}

// CleanupExpiredAuthData removes expired sessions and blacklist entries.
// Mongo TTL indexes do this too, but only on its own schedule; the scheduler
// calls this for deterministic cleanup.
func (m *MongoDB) CleanupExpiredAuthData(ctx context.Context) error {
	now := time.Now()

	if _, err := m.sessions.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}}); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	if _, err := m.blacklist.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}}); err != nil {
		return fmt.Errorf("failed to cleanup token blacklist: %w", err)
	}
	return nil
}
