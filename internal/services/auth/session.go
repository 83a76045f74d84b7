package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/database"
	"github.com/recapio/recapio/internal/models"
	"github.com/recapio/recapio/internal/utils"
)

// SessionService manages refresh-token sessions and the token blacklist.
type SessionService struct {
	db         *database.MongoDB
	jwtService *JWTService
}

// NewSessionService creates a new session service
func NewSessionService(db *database.MongoDB, jwtService *JWTService) *SessionService {
	return &SessionService{
		db:         db,
		jwtService: jwtService,
	}
}

// CreateSession creates a new session for a user and issues a token pair.
func (s *SessionService) CreateSession(ctx context.Context, user *models.User, ipAddress, userAgent *string) (*models.TokenPair, *models.Session, error) {
	sessionID := uuid.New()

	tokens, err := s.jwtService.GenerateTokenPair(user, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		ID:           sessionID,
		UserID:       user.ID,
		RefreshToken: tokens.RefreshToken,
		IsActive:     true,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
		ExpiresAt:    now.Add(s.jwtService.config.RefreshTokenDuration),
		CreatedAt:    now,
		LastActivity: now,
	}

	if err := s.db.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	utils.LogInfo(ctx, "Session created", utils.Fields{
		"session_id": sessionID.String(),
		"user_id":    user.ID.String(),
	})

	return tokens, session, nil
}

// RefreshSession rotates the refresh token: the old one is blacklisted and a
// new pair is issued against the same session.
func (s *SessionService) RefreshSession(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid refresh token")
	}

	blacklisted, err := s.db.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if blacklisted {
		return nil, utils.NewUnauthorizedError("refresh token has been revoked")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, utils.NewUnauthorizedError("invalid session reference")
	}

	session, err := s.db.GetSessionByID(ctx, sessionID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if session == nil || !session.IsActive {
		return nil, utils.NewUnauthorizedError("session is no longer active")
	}
	if session.RefreshToken != refreshToken {
		// Token reuse after rotation: the session is compromised, drop it.
		_ = s.db.DeleteSession(ctx, session.ID)
		utils.LogWarn(ctx, "Refresh token reuse detected, session deleted", utils.Fields{
			"session_id": session.ID.String(),
			"user_id":    session.UserID.String(),
		})
		return nil, utils.NewUnauthorizedError("refresh token mismatch")
	}

	user, err := s.db.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if user == nil || user.Status != models.UserStatusActive {
		return nil, utils.NewUnauthorizedError("user account is not active")
	}

	if err := s.BlacklistToken(ctx, claims, "rotated"); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(user, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	session.RefreshToken = tokens.RefreshToken
	session.LastActivity = time.Now()
	if err := s.db.UpdateSession(ctx, session); err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	return tokens, nil
}

// RevokeSession deactivates a session and blacklists its refresh token.
func (s *SessionService) RevokeSession(ctx context.Context, sessionID uuid.UUID, reason string) error {
	session, err := s.db.GetSessionByID(ctx, sessionID)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if session == nil {
		return nil
	}

	session.IsActive = false
	if err := s.db.UpdateSession(ctx, session); err != nil {
		return utils.NewDatabaseError(err)
	}

	if claims, err := s.jwtService.ValidateRefreshToken(session.RefreshToken); err == nil {
		if err := s.BlacklistToken(ctx, claims, reason); err != nil {
			return err
		}
	}

	utils.LogInfo(ctx, "Session revoked", utils.Fields{
		"session_id": sessionID.String(),
		"reason":     reason,
	})
	return nil
}

// RevokeUserSessions deactivates every active session of a user.
func (s *SessionService) RevokeUserSessions(ctx context.Context, userID uuid.UUID, reason string) error {
	sessions, err := s.db.GetUserSessions(ctx, userID)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	for i := range sessions {
		if err := s.RevokeSession(ctx, sessions[i].ID, reason); err != nil {
			return err
		}
	}
	return nil
}

// GetUserSessions returns session metadata for the sessions endpoint.
func (s *SessionService) GetUserSessions(ctx context.Context, userID uuid.UUID, currentSessionID uuid.UUID) ([]models.SessionInfo, error) {
	sessions, err := s.db.GetUserSessions(ctx, userID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	infos := make([]models.SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, models.SessionInfo{
			ID:           session.ID.String(),
			IPAddress:    session.IPAddress,
			CreatedAt:    session.CreatedAt,
			LastActivity: session.LastActivity,
			IsCurrent:    session.ID == currentSessionID,
		})
	}
	return infos, nil
}

// ValidateSession checks that the session behind an access token is still
// alive, and bumps its activity timestamp.
func (s *SessionService) ValidateSession(ctx context.Context, claims *JWTClaims) error {
	blacklisted, err := s.db.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if blacklisted {
		return utils.NewUnauthorizedError("token has been revoked")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return utils.NewUnauthorizedError("invalid session reference")
	}

	session, err := s.db.GetSessionByID(ctx, sessionID)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if session == nil || !session.IsActive {
		return utils.NewUnauthorizedError("session is no longer active")
	}
	if session.ExpiresAt.Before(time.Now()) {
		return utils.NewUnauthorizedError("session has expired")
	}

	_ = s.db.UpdateSessionActivity(ctx, sessionID)
	return nil
}

// BlacklistToken records a token's jti so it is rejected until expiry.
func (s *SessionService) BlacklistToken(ctx context.Context, claims *JWTClaims, reason string) error {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return utils.NewUnauthorizedError("invalid user reference")
	}

	entry := &models.TokenBlacklist{
		ID:        uuid.New(),
		TokenJTI:  claims.ID,
		UserID:    userID,
		Reason:    reason,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: time.Now(),
	}
	if err := s.db.CreateTokenBlacklist(ctx, entry); err != nil {
		return utils.NewDatabaseError(err)
	}
	return nil
}

// CleanupExpiredSessions is invoked by the scheduler.
func (s *SessionService) CleanupExpiredSessions(ctx context.Context) error {
	return s.db.CleanupExpiredAuthData(ctx)
}
