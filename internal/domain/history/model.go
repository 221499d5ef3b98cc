package history

import (
	"time"

	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// Entry is a persisted activity log record.
type Entry struct {
	ID         string        `json:"id"`
	Kind       parse.Kind    `json:"kind"`
	Payload    parse.Payload `json:"payload"`
	Confidence float64       `json:"confidence"`
	RawText    string        `json:"raw_text"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Activity converts an entry back into the pipeline's value type.
func (e Entry) Activity() parse.Activity {
	return parse.Activity{
		Kind:       e.Kind,
		Payload:    e.Payload,
		Confidence: e.Confidence,
		RawText:    e.RawText,
	}
}
