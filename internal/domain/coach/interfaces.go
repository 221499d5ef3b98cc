package coach

import (
	"context"

	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// Extractor converts free text into a typed activity via a remote model.
// Implementations are expected to fall back to local rules internally; an
// error return is reserved for transport-level failure the orchestrator
// must recover from.
type Extractor interface {
	Extract(ctx context.Context, text string) (parse.Activity, error)
	Ping(ctx context.Context) error
}

// Responder produces coaching output from a remote model.
type Responder interface {
	Respond(ctx context.Context, text string, activity parse.Activity, user UserContext) (Response, error)
	DailyMission(ctx context.Context, user UserContext) (string, error)
	AnalyzePatterns(ctx context.Context, activities []parse.Activity) (PatternAnalysis, error)
	Ping(ctx context.Context) error
}
