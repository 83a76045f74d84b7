package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/recapio/recapio/internal/platform"
)

// User is an account in the back office. Roles are plain strings checked by
// the auth middleware ("admin", "customer").
type User struct {
	ID           uuid.UUID  `json:"id" bson:"id"`
	Name         string     `json:"name" bson:"name"`
	Surname      string     `json:"surname" bson:"surname"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash *string    `json:"-" bson:"password_hash"`
	Status       UserStatus `json:"status" bson:"status"`
	Roles        []string   `json:"roles" bson:"roles"`
	Credits      int        `json:"credits" bson:"credits"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

// Order is a purchase of recap credits or a subscription period.
type Order struct {
	ID        uuid.UUID   `json:"id" bson:"id"`
	UserID    uuid.UUID   `json:"user_id" bson:"user_id"`
	Plan      OrderPlan   `json:"plan" bson:"plan"`
	Credits   int         `json:"credits" bson:"credits"`
	Amount    int64       `json:"amount" bson:"amount"` // minor units
	Currency  string      `json:"currency" bson:"currency"`
	Status    OrderStatus `json:"status" bson:"status"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

type OrderPlan string

const (
	OrderPlanSingle       OrderPlan = "single"
	OrderPlanPack10       OrderPlan = "pack10"
	OrderPlanSubscription OrderPlan = "subscription"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Payment records a provider-side transaction for an order. Verification is
// the provider's job; we only ingest its callbacks.
type Payment struct {
	ID          uuid.UUID     `json:"id" bson:"id"`
	OrderID     uuid.UUID     `json:"order_id" bson:"order_id"`
	Provider    string        `json:"provider" bson:"provider"`
	ProviderRef string        `json:"provider_ref" bson:"provider_ref"`
	Amount      int64         `json:"amount" bson:"amount"`
	Currency    string        `json:"currency" bson:"currency"`
	Status      PaymentStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" bson:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// VideoJob tracks one source video through the dubbing pipeline. SourceURL
// is stored exactly as the user entered it; Platform and VideoID come from
// the detector.
type VideoJob struct {
	ID             uuid.UUID         `json:"id" bson:"id"`
	JobID          string            `json:"job_id" bson:"job_id"`
	UserID         uuid.UUID         `json:"user_id" bson:"user_id"`
	SourceURL      string            `json:"source_url" bson:"source_url"`
	Platform       platform.Platform `json:"platform" bson:"platform"`
	VideoID        string            `json:"video_id" bson:"video_id"`
	TargetLanguage string            `json:"target_language" bson:"target_language"`
	Voice          string            `json:"voice,omitempty" bson:"voice,omitempty"`
	ShortsOnly     bool              `json:"shorts_only" bson:"shorts_only"`
	Status         JobStatus         `json:"status" bson:"status"`
	EngineJobID    string            `json:"-" bson:"engine_job_id,omitempty"`
	ResultS3Key    string            `json:"-" bson:"result_s3_key,omitempty"`
	ErrorMessage   *string           `json:"error_message,omitempty" bson:"error_message,omitempty"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Session is a refresh-token session; one per login.
type Session struct {
	ID           uuid.UUID `json:"id" bson:"id"`
	UserID       uuid.UUID `json:"user_id" bson:"user_id"`
	RefreshToken string    `json:"-" bson:"refresh_token"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	IPAddress    *string   `json:"ip_address,omitempty" bson:"ip_address,omitempty"`
	UserAgent    *string   `json:"-" bson:"user_agent,omitempty"`
	ExpiresAt    time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	LastActivity time.Time `json:"last_activity" bson:"last_activity"`
}

// TokenBlacklist invalidates a JWT by its jti until its natural expiry.
type TokenBlacklist struct {
	ID        uuid.UUID `bson:"id"`
	TokenJTI  string    `bson:"token_jti"`
	UserID    uuid.UUID `bson:"user_id"`
	Reason    string    `bson:"reason"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type PaginationOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
}

// Request/response payloads

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Success bool       `json:"success"`
	Tokens  *TokenPair `json:"tokens,omitempty"`
	User    *User      `json:"user,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ValidateURLRequest struct {
	URL        string `json:"url"`
	ShortsOnly bool   `json:"shorts_only,omitempty"`
}

// ValidateURLResponse mirrors the validator result and adds the badge
// metadata for the detected platform.
type ValidateURLResponse struct {
	Valid    bool                  `json:"valid"`
	Platform platform.Platform     `json:"platform,omitempty"`
	VideoID  string                `json:"video_id,omitempty"`
	Reason   platform.Reason       `json:"reason,omitempty"`
	Message  string                `json:"message,omitempty"`
	Display  *platform.DisplayInfo `json:"display,omitempty"`
}

type PlatformListItem struct {
	Platform platform.Platform    `json:"platform"`
	Display  platform.DisplayInfo `json:"display"`
}

type CreateJobRequest struct {
	URL            string `json:"url" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	Voice          string `json:"voice,omitempty"`
	ShortsOnly     bool   `json:"shorts_only,omitempty"`
}

type CreateJobResponse struct {
	Status           string    `json:"status"`
	Message          string    `json:"message"`
	JobID            string    `json:"job_id"`
	ProcessingStatus JobStatus `json:"processing_status"`
}

type JobListResponse struct {
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Jobs  []JobListItem `json:"jobs"`
}

type JobListItem struct {
	JobID          string            `json:"job_id"`
	SourceURL      string            `json:"source_url"`
	Platform       platform.Platform `json:"platform"`
	TargetLanguage string            `json:"target_language"`
	Status         JobStatus         `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
}

type JobResultResponse struct {
	JobID     string    `json:"job_id"`
	ResultURL string    `json:"result_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateUserRequest struct {
	Name     string   `json:"name" binding:"required"`
	Surname  string   `json:"surname"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles,omitempty"`
}

type UpdateUserRequest struct {
	Name    *string     `json:"name,omitempty"`
	Surname *string     `json:"surname,omitempty"`
	Email   *string     `json:"email,omitempty"`
	Status  *UserStatus `json:"status,omitempty"`
	Credits *int        `json:"credits,omitempty"`
}

type UserListResponse struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Users []User `json:"users"`
}

type CreateOrderRequest struct {
	UserID   string    `json:"user_id" binding:"required"`
	Plan     OrderPlan `json:"plan" binding:"required"`
	Credits  int       `json:"credits" binding:"required"`
	Amount   int64     `json:"amount" binding:"required"`
	Currency string    `json:"currency" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

type OrderListResponse struct {
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
	Orders []Order `json:"orders"`
}

// PaymentWebhookRequest is the normalized shape of provider callbacks.
type PaymentWebhookRequest struct {
	OrderID     string        `json:"order_id" binding:"required"`
	Provider    string        `json:"provider" binding:"required"`
	ProviderRef string        `json:"provider_ref" binding:"required"`
	Amount      int64         `json:"amount" binding:"required"`
	Currency    string        `json:"currency" binding:"required"`
	Status      PaymentStatus `json:"status" binding:"required"`
}

type PaymentListResponse struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Payments []Payment `json:"payments"`
}

type SessionInfo struct {
	ID           string    `json:"id"`
	IPAddress    *string   `json:"ip_address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	IsCurrent    bool      `json:"is_current"`
}
