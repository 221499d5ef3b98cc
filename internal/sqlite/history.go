package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rowanvale/lifelog-mcp/internal/domain/history"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
	"github.com/rowanvale/lifelog-mcp/internal/repository"
)

// HistoryRepository implements history.Repository for SQLite
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save inserts an activity entry
func (r *HistoryRepository) Save(ctx context.Context, entry *history.Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO activities (id, kind, payload, confidence, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Kind),
		string(payload),
		entry.Confidence,
		entry.RawText,
		createdAt,
	); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to save activity: %w", err)
	}

	entry.CreatedAt = createdAt
	return nil
}

// Recent returns the newest entries, most recent first
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	query := `
		SELECT id, kind, payload, confidence, raw_text, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var entry history.Entry
		var kind, payload string
		if err := rows.Scan(&entry.ID, &kind, &payload, &entry.Confidence, &entry.RawText, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		entry.Kind = parse.Kind(kind)
		if err := json.Unmarshal([]byte(payload), &entry.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountsByKind tallies stored entries per kind
func (r *HistoryRepository) CountsByKind(ctx context.Context) (map[parse.Kind]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM activities GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	defer rows.Close()

	counts := make(map[parse.Kind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[parse.Kind(kind)] = count
	}
	return counts, rows.Err()
}
