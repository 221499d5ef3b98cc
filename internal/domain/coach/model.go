package coach

import "github.com/rowanvale/lifelog-mcp/internal/domain/parse"

// Response is a short coaching reply. Message is always populated; the rest
// is optional richness the model may or may not provide.
type Response struct {
	Message       string   `json:"message"`
	Motivation    string   `json:"motivation,omitempty"`
	Insights      []string `json:"insights,omitempty"`
	Challenge     string   `json:"challenge,omitempty"`
	Encouragement string   `json:"encouragement,omitempty"`
	NextSteps     []string `json:"next_steps,omitempty"`
}

// UserContext carries optional personalization signals into coaching
// prompts. Recent activities are most-recent-first; they shape tone, not
// correctness.
type UserContext struct {
	RecentActivities []parse.Activity `json:"recent_activities,omitempty"`
	Goals            []string         `json:"goals,omitempty"`
	CurrentMood      string           `json:"current_mood,omitempty"`
	EnergyLevel      int              `json:"energy_level,omitempty"`
}

// Result is the orchestrator's output contract. Activity and Response are
// always populated, even on total remote failure; Error is set only when a
// remote call failed or timed out and does not invalidate the rest.
type Result struct {
	Activity   parse.Activity `json:"parsed_activity"`
	Response   Response       `json:"coach_response"`
	ShouldSave bool           `json:"should_save"`
	Error      string         `json:"error,omitempty"`
}

// PatternAnalysis summarizes trends over a user's activity history.
type PatternAnalysis struct {
	Trends          []string `json:"trends"`
	Recommendations []string `json:"recommendations"`
	Achievements    []string `json:"achievements"`
}

// ConnectionStatus reports remote client reachability for health checks.
type ConnectionStatus struct {
	ExtractionOK bool     `json:"extraction_ok"`
	CoachingOK   bool     `json:"coaching_ok"`
	Errors       []string `json:"errors"`
}
