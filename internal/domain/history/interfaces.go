package history

import (
	"context"

	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// Repository provides persistence for activity entries.
type Repository interface {
	Save(ctx context.Context, entry *Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
	CountsByKind(ctx context.Context) (map[parse.Kind]int, error)
}
