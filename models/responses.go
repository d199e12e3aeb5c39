package models

import (
	"time"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// NewSuccessResponse creates a successful API response
func NewSuccessResponse(data any, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}

// PetView is the pet as the client renders it: stored state plus the derived
// mood and level progress.
type PetView struct {
	XP         int64  `json:"xp"`
	Level      int    `json:"level"`
	StreakDays int    `json:"streak_days"`
	Progress   int    `json:"progress"`
	Mood       string `json:"mood"`
	LastClaim  string `json:"last_claim,omitempty"`
}

// Occurrence is one virtual calendar instance of a recurring task. It is
// never persisted.
type Occurrence struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	Day    string `json:"day"` // YYYY-MM-DD
}
