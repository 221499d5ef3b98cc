package mcp

import (
	"errors"
	"fmt"

	"github.com/rowanvale/lifelog-mcp/internal/domain/history"
	"github.com/rowanvale/lifelog-mcp/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// mapError maps domain errors to MCP error codes; unrecognized errors pass
// through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, history.ErrInvalidEntry):
		return &APIError{Code: "INVALID_ENTRY", Message: "activity entry is invalid", RecoveryHint: "Check the activity kind"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "entry not found"}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: "entry already exists"}
	default:
		return err
	}
}
