package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// contextHistoryLimit bounds how much history is folded into coaching
// prompts; analysisHistoryLimit bounds pattern analysis reads.
const (
	contextHistoryLimit  = 10
	analysisHistoryLimit = 100
)

// LogActivityInput is the payload for the log_activity tool.
type LogActivityInput struct {
	Text        string   `json:"text" jsonschema:"What the user did, in plain language, e.g. 'ran 5k in 25 minutes'"`
	Goals       []string `json:"goals,omitempty" jsonschema:"The user's current goals, used to personalize the coaching reply"`
	Mood        string   `json:"mood,omitempty" jsonschema:"The user's current mood, if known"`
	EnergyLevel int      `json:"energy_level,omitempty" jsonschema:"The user's current energy level from 1 to 10, if known"`
}

// LogActivityOutput is the result of the log_activity tool.
type LogActivityOutput struct {
	Activity   parse.Activity `json:"parsed_activity"`
	Response   coach.Response `json:"coach_response"`
	ShouldSave bool           `json:"should_save"`
	Saved      bool           `json:"saved"`
	EntryID    string         `json:"entry_id,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// LogBatchInput is the payload for the log_batch tool.
type LogBatchInput struct {
	Texts []string `json:"texts" jsonschema:"Multiple activity descriptions to process in one call"`
	Goals []string `json:"goals,omitempty" jsonschema:"The user's current goals"`
}

// LogBatchOutput is the result of the log_batch tool, one entry per input
// text in the same order.
type LogBatchOutput struct {
	Results []LogActivityOutput `json:"results"`
}

// RecentActivitiesInput is the payload for the get_recent_activities tool.
type RecentActivitiesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of entries to return, default 20"`
}

// ActivitySummary is one stored entry in get_recent_activities output.
type ActivitySummary struct {
	ID         string        `json:"id"`
	Kind       parse.Kind    `json:"kind"`
	Payload    parse.Payload `json:"payload"`
	Confidence float64       `json:"confidence"`
	RawText    string        `json:"raw_text"`
	CreatedAt  time.Time     `json:"created_at"`
}

// RecentActivitiesOutput is the result of the get_recent_activities tool.
type RecentActivitiesOutput struct {
	Activities []ActivitySummary `json:"activities"`
}

// SuggestionsInput is the payload for the get_suggestions tool.
type SuggestionsInput struct {
	Text string `json:"text,omitempty" jsonschema:"The input the user struggled to log, used to pick relevant examples"`
}

// SuggestionsOutput is the result of the get_suggestions tool.
type SuggestionsOutput struct {
	Suggestions []string `json:"suggestions"`
}

// DailyMissionInput is the payload for the daily_mission tool.
type DailyMissionInput struct {
	Goals []string `json:"goals,omitempty" jsonschema:"The user's current goals, used to personalize the mission"`
}

// DailyMissionOutput is the result of the daily_mission tool.
type DailyMissionOutput struct {
	Mission string `json:"mission"`
}

// AnalyzePatternsInput is the payload for the analyze_patterns tool.
type AnalyzePatternsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"How many recent entries to analyze, default 100"`
}

// AnalyzePatternsOutput is the result of the analyze_patterns tool.
type AnalyzePatternsOutput struct {
	Trends          []string `json:"trends"`
	Recommendations []string `json:"recommendations"`
	Achievements    []string `json:"achievements"`
	ActivityCount   int      `json:"activity_count"`
}

// HealthCheckInput is the payload for the health_check tool.
type HealthCheckInput struct{}

// HealthCheckOutput is the result of the health_check tool.
type HealthCheckOutput struct {
	ExtractionOK bool     `json:"extraction_ok"`
	CoachingOK   bool     `json:"coaching_ok"`
	DatabaseOK   bool     `json:"database_ok"`
	Errors       []string `json:"errors"`
}

type toolHandler struct {
	services Services
	logger   *slog.Logger
}

func registerTools(server *sdkmcp.Server, services Services, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	h := &toolHandler{services: services, logger: logger}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_activity",
		Description: "Log a health or fitness activity described in plain language and get a coaching reply",
	}, h.logActivity)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "log_batch",
		Description: "Log several activities at once; results come back in input order",
	}, h.logBatch)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activities",
		Description: "List recently logged activities, most recent first",
	}, h.recentActivities)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_suggestions",
		Description: "Get example phrasings for logging activities, matched to the user's input when possible",
	}, h.suggestions)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "daily_mission",
		Description: "Get one concrete health mission for today",
	}, h.dailyMission)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "analyze_patterns",
		Description: "Analyze the user's activity history for trends, recommendations and achievements",
	}, h.analyzePatterns)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "health_check",
		Description: "Check connectivity to the model endpoints and the local database",
	}, h.healthCheck)
}

func (h *toolHandler) logActivity(ctx context.Context, req *sdkmcp.CallToolRequest, in LogActivityInput) (*sdkmcp.CallToolResult, LogActivityOutput, error) {
	user := h.userContext(ctx, in.Goals, in.Mood, in.EnergyLevel)
	result := h.services.Coach.ProcessInput(ctx, in.Text, user)
	out := h.persistResult(ctx, result)
	return nil, out, nil
}

func (h *toolHandler) logBatch(ctx context.Context, req *sdkmcp.CallToolRequest, in LogBatchInput) (*sdkmcp.CallToolResult, LogBatchOutput, error) {
	user := h.userContext(ctx, in.Goals, "", 0)
	results := h.services.Coach.ProcessBatch(ctx, in.Texts, user)

	out := LogBatchOutput{Results: make([]LogActivityOutput, 0, len(results))}
	for _, result := range results {
		out.Results = append(out.Results, h.persistResult(ctx, result))
	}
	return nil, out, nil
}

// persistResult saves the parsed activity when the pipeline marked it
// save-worthy. A storage failure downgrades to saved=false rather than
// failing the tool call; the coaching reply is still useful.
func (h *toolHandler) persistResult(ctx context.Context, result coach.Result) LogActivityOutput {
	out := LogActivityOutput{
		Activity:   result.Activity,
		Response:   result.Response,
		ShouldSave: result.ShouldSave,
		Error:      result.Error,
	}
	if !result.ShouldSave {
		return out
	}

	entry, err := h.services.History.LogActivity(ctx, result.Activity)
	if err != nil {
		h.logger.Warn("failed to save activity", "kind", result.Activity.Kind, "error", err)
		return out
	}
	out.Saved = true
	out.EntryID = entry.ID
	return out
}

func (h *toolHandler) recentActivities(ctx context.Context, req *sdkmcp.CallToolRequest, in RecentActivitiesInput) (*sdkmcp.CallToolResult, RecentActivitiesOutput, error) {
	entries, err := h.services.History.Recent(ctx, in.Limit)
	if err != nil {
		return nil, RecentActivitiesOutput{}, mapError(err)
	}

	out := RecentActivitiesOutput{Activities: make([]ActivitySummary, 0, len(entries))}
	for _, entry := range entries {
		out.Activities = append(out.Activities, ActivitySummary{
			ID:         entry.ID,
			Kind:       entry.Kind,
			Payload:    entry.Payload,
			Confidence: entry.Confidence,
			RawText:    entry.RawText,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return nil, out, nil
}

func (h *toolHandler) suggestions(ctx context.Context, req *sdkmcp.CallToolRequest, in SuggestionsInput) (*sdkmcp.CallToolResult, SuggestionsOutput, error) {
	return nil, SuggestionsOutput{Suggestions: h.services.Coach.GetSuggestions(in.Text)}, nil
}

func (h *toolHandler) dailyMission(ctx context.Context, req *sdkmcp.CallToolRequest, in DailyMissionInput) (*sdkmcp.CallToolResult, DailyMissionOutput, error) {
	user := h.userContext(ctx, in.Goals, "", 0)
	return nil, DailyMissionOutput{Mission: h.services.Coach.GenerateDailyMission(ctx, user)}, nil
}

func (h *toolHandler) analyzePatterns(ctx context.Context, req *sdkmcp.CallToolRequest, in AnalyzePatternsInput) (*sdkmcp.CallToolResult, AnalyzePatternsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = analysisHistoryLimit
	}
	activities, err := h.services.History.RecentActivities(ctx, limit)
	if err != nil {
		return nil, AnalyzePatternsOutput{}, mapError(err)
	}

	analysis := h.services.Coach.AnalyzeUserPatterns(ctx, activities)
	return nil, AnalyzePatternsOutput{
		Trends:          analysis.Trends,
		Recommendations: analysis.Recommendations,
		Achievements:    analysis.Achievements,
		ActivityCount:   len(activities),
	}, nil
}

func (h *toolHandler) healthCheck(ctx context.Context, req *sdkmcp.CallToolRequest, in HealthCheckInput) (*sdkmcp.CallToolResult, HealthCheckOutput, error) {
	status := h.services.Coach.ValidateConnections(ctx)
	out := HealthCheckOutput{
		ExtractionOK: status.ExtractionOK,
		CoachingOK:   status.CoachingOK,
		Errors:       status.Errors,
	}

	if _, err := h.services.History.CountsByKind(ctx); err != nil {
		out.Errors = append(out.Errors, "database: "+err.Error())
	} else {
		out.DatabaseOK = true
	}
	return nil, out, nil
}

// userContext assembles coaching context from the caller's hints plus
// recent history. History failures are tolerated; context is best-effort.
func (h *toolHandler) userContext(ctx context.Context, goals []string, mood string, energyLevel int) coach.UserContext {
	user := coach.UserContext{
		Goals:       goals,
		CurrentMood: mood,
		EnergyLevel: energyLevel,
	}
	recent, err := h.services.History.RecentActivities(ctx, contextHistoryLimit)
	if err != nil {
		h.logger.Debug("could not load recent activities for context", "error", err)
		return user
	}
	user.RecentActivities = recent
	return user
}
