package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// defaultRecentLimit bounds history reads when the caller doesn't specify.
const defaultRecentLimit = 20

// Service handles activity history operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new history service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Log persists a parsed activity, assigning an ID and timestamp if missing.
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry == nil || !entry.Kind.Valid() {
		return ErrInvalidEntry
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return fmt.Errorf("saving history entry: %w", err)
	}
	s.logger.Debug("activity saved", "id", entry.ID, "kind", entry.Kind)
	return nil
}

// LogActivity persists a pipeline result directly.
func (s *Service) LogActivity(ctx context.Context, activity parse.Activity) (*Entry, error) {
	entry := &Entry{
		Kind:       activity.Kind,
		Payload:    activity.Payload,
		Confidence: activity.Confidence,
		RawText:    activity.RawText,
	}
	if err := s.Log(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns the newest entries, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	entries, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return entries, nil
}

// RecentActivities returns recent history as pipeline values, most recent
// first, for use as coaching context.
func (s *Service) RecentActivities(ctx context.Context, limit int) ([]parse.Activity, error) {
	entries, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	activities := make([]parse.Activity, 0, len(entries))
	for _, e := range entries {
		activities = append(activities, e.Activity())
	}
	return activities, nil
}

// CountsByKind tallies stored entries per kind.
func (s *Service) CountsByKind(ctx context.Context) (map[parse.Kind]int, error) {
	counts, err := s.repo.CountsByKind(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting history: %w", err)
	}
	return counts, nil
}
