package utils

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidVideoURL     ErrorCode = "INVALID_VIDEO_URL"
	ErrorCodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	ErrorCodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	ErrorCodePaymentNotFound     ErrorCode = "PAYMENT_NOT_FOUND"
	ErrorCodeInsufficientCredits ErrorCode = "INSUFFICIENT_CREDITS"
	ErrorCodeEngineError         ErrorCode = "ENGINE_ERROR"
	ErrorCodeStorageError        ErrorCode = "STORAGE_ERROR"
	ErrorCodeDatabaseError       ErrorCode = "DATABASE_ERROR"
	ErrorCodeRateLimitExceeded   ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrorCodeInternalError       ErrorCode = "INTERNAL_ERROR"
	ErrorCodeValidationError     ErrorCode = "VALIDATION_ERROR"
	ErrorCodeDuplicateJob        ErrorCode = "DUPLICATE_JOB"
)

type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func NewErrorWithDetails(code ErrorCode, message string, statusCode int, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Common error constructors
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return NewErrorWithDetails(ErrorCodeValidationError, message, http.StatusBadRequest, details)
}

// NewInvalidVideoURLError wraps a platform validation failure. The message
// comes from the validator so the UI shows the differentiated guidance.
func NewInvalidVideoURLError(url, message string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeInvalidVideoURL,
		message,
		http.StatusBadRequest,
		map[string]interface{}{
			"supported_platforms": []string{"youtube", "tiktok", "facebook"},
			"provided":            url,
		},
	)
}

func NewJobNotFoundError(jobID string) *AppError {
	return NewError(
		ErrorCodeJobNotFound,
		fmt.Sprintf("Job with ID %s not found", jobID),
		http.StatusNotFound,
	)
}

func NewUserNotFoundError(userID string) *AppError {
	return NewError(
		ErrorCodeUserNotFound,
		fmt.Sprintf("User with ID %s not found", userID),
		http.StatusNotFound,
	)
}

func NewOrderNotFoundError(orderID string) *AppError {
	return NewError(
		ErrorCodeOrderNotFound,
		fmt.Sprintf("Order with ID %s not found", orderID),
		http.StatusNotFound,
	)
}

func NewPaymentNotFoundError(paymentID string) *AppError {
	return NewError(
		ErrorCodePaymentNotFound,
		fmt.Sprintf("Payment with ID %s not found", paymentID),
		http.StatusNotFound,
	)
}

func NewInsufficientCreditsError() *AppError {
	return NewError(
		ErrorCodeInsufficientCredits,
		"Not enough credits to create a new video job",
		http.StatusPaymentRequired,
	)
}

func NewDatabaseError(err error) *AppError {
	return NewError(
		ErrorCodeDatabaseError,
		"Database operation failed",
		http.StatusInternalServerError,
	)
}

func NewStorageError(err error) *AppError {
	return NewError(
		ErrorCodeStorageError,
		"Storage operation failed",
		http.StatusInternalServerError,
	)
}

func NewEngineError(err error) *AppError {
	return NewError(
		ErrorCodeEngineError,
		"Dubbing engine request failed",
		http.StatusBadGateway,
	)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Invalid or missing authentication"
	}
	return NewError(ErrorCodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError() *AppError {
	return NewError(
		ErrorCodeForbidden,
		"Insufficient permissions for this operation",
		http.StatusForbidden,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError() *AppError {
	return NewError(
		ErrorCodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)
}

// NewDuplicateJobError rejects a resubmission of a video that already has a
// live job; job_id points the client at it.
func NewDuplicateJobError(url, jobID string) *AppError {
	return NewErrorWithDetails(
		ErrorCodeDuplicateJob,
		"A job for this video already exists",
		http.StatusConflict,
		map[string]interface{}{
			"url":    url,
			"job_id": jobID,
		},
	)
}
