package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

const coachingSystemPrompt = `You are a supportive health and fitness coach inside an activity logging app.
The user just logged an activity. Reply warmly and specifically to what they logged.
Keep the main message under 200 characters. Never shame the user; celebrate consistency over intensity.`

const missionSystemPrompt = `You are a health coach. Produce exactly one short daily mission for the user,
a single concrete action for today such as a walk, a glass of water or an early night.
Answer with the mission text only, one sentence, no preamble.`

const patternSystemPrompt = `You are a health coach analyzing a user's recent activity log.
Identify trends, make actionable recommendations and call out achievements.
Keep every item to one short sentence.`

// Coach produces coaching output from a remote model. Unlike the extractor
// it surfaces transport errors; the orchestrator decides what canned reply
// to substitute.
type Coach struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewCoach builds a Coach from connection config.
func NewCoach(cfg Config, logger *slog.Logger) *Coach {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coach{
		client: newClient(cfg),
		model:  cfg.CoachingModel,
		logger: logger,
	}
}

// Respond generates a coaching reply to a logged activity.
func (c *Coach) Respond(ctx context.Context, text string, activity parse.Activity, user coach.UserContext) (coach.Response, error) {
	prompt := buildCoachingPrompt(text, activity, user)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "coach_reply",
		Description: openai.String("Coaching reply to the user's logged activity"),
		Schema:      coachReplySchema,
		Strict:      openai.Bool(true),
	}
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(coachingSystemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: c.model,
	})
	if err != nil {
		return coach.Response{}, fmt.Errorf("coaching call: %w", err)
	}
	if len(chat.Choices) == 0 {
		return coach.Response{}, fmt.Errorf("coaching call: empty response")
	}
	return decodeReply(chat.Choices[0].Message.Content), nil
}

// DailyMission generates one personalized mission for today.
func (c *Coach) DailyMission(ctx context.Context, user coach.UserContext) (string, error) {
	prompt := "Give me today's mission."
	if summary := summarizeUser(user); summary != "" {
		prompt = summary + "\n\n" + prompt
	}
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(missionSystemPrompt),
			openai.UserMessage(prompt),
		},
		Model: c.model,
	})
	if err != nil {
		return "", fmt.Errorf("mission call: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("mission call: empty response")
	}
	return strings.TrimSpace(chat.Choices[0].Message.Content), nil
}

// AnalyzePatterns asks the model for trends over the given history.
func (c *Coach) AnalyzePatterns(ctx context.Context, activities []parse.Activity) (coach.PatternAnalysis, error) {
	var sb strings.Builder
	sb.WriteString("Recent activity log, most recent first:\n")
	for _, activity := range activities {
		sb.WriteString("- ")
		sb.WriteString(summarizeActivity(activity))
		sb.WriteString("\n")
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "pattern_analysis",
		Description: openai.String("Trends, recommendations and achievements from the activity history"),
		Schema:      patternSchema,
		Strict:      openai.Bool(true),
	}
	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(patternSystemPrompt),
			openai.UserMessage(sb.String()),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: c.model,
	})
	if err != nil {
		return coach.PatternAnalysis{}, fmt.Errorf("analysis call: %w", err)
	}
	if len(chat.Choices) == 0 {
		return coach.PatternAnalysis{}, fmt.Errorf("analysis call: empty response")
	}

	var wire patternReply
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &wire); err != nil {
		return coach.PatternAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	return coach.PatternAnalysis{
		Trends:          wire.Trends,
		Recommendations: wire.Recommendations,
		Achievements:    wire.Achievements,
	}, nil
}

// Ping checks that the coaching endpoint is reachable.
func (c *Coach) Ping(ctx context.Context) error {
	return ping(ctx, c.client, c.model)
}

// decodeReply parses the model output leniently. Models occasionally ignore
// the schema and answer in prose; in that case the prose becomes the message.
func decodeReply(content string) coach.Response {
	var wire coachReply
	if err := json.Unmarshal([]byte(content), &wire); err == nil && wire.Message != "" {
		return coach.Response{
			Message:       wire.Message,
			Motivation:    wire.Motivation,
			Insights:      wire.Insights,
			Challenge:     wire.Challenge,
			Encouragement: wire.Encouragement,
			NextSteps:     wire.NextSteps,
		}
	}
	return coach.Response{Message: truncate(strings.TrimSpace(content), 200)}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// buildCoachingPrompt folds the parsed activity and user context into a
// compact prompt for the coaching model.
func buildCoachingPrompt(text string, activity parse.Activity, user coach.UserContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The user logged: %q\n", text)
	fmt.Fprintf(&sb, "Parsed as: %s\n", summarizeActivity(activity))
	if summary := summarizeUser(user); summary != "" {
		sb.WriteString(summary)
	}
	return sb.String()
}

func summarizeUser(user coach.UserContext) string {
	var sb strings.Builder
	if len(user.Goals) > 0 {
		fmt.Fprintf(&sb, "Goals: %s\n", strings.Join(user.Goals, ", "))
	}
	if user.CurrentMood != "" {
		fmt.Fprintf(&sb, "Current mood: %s\n", user.CurrentMood)
	}
	if user.EnergyLevel > 0 {
		fmt.Fprintf(&sb, "Energy level: %d/10\n", user.EnergyLevel)
	}
	if len(user.RecentActivities) > 0 {
		sb.WriteString("Recent activity, most recent first:\n")
		for _, activity := range user.RecentActivities {
			sb.WriteString("- ")
			sb.WriteString(summarizeActivity(activity))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// summarizeActivity renders one activity as a short human-readable line.
func summarizeActivity(activity parse.Activity) string {
	p := activity.Payload
	switch activity.Kind {
	case parse.KindWeight:
		if p.Weight != nil {
			return fmt.Sprintf("weight %g %s", p.Weight.Value, p.Weight.Unit)
		}
	case parse.KindFood:
		if p.Food != nil {
			names := make([]string, 0, len(p.Food.Items))
			for _, item := range p.Food.Items {
				names = append(names, item.Name)
			}
			line := "ate " + strings.Join(names, ", ")
			if p.Food.Meal != "" {
				line += " for " + p.Food.Meal
			}
			return line
		}
	case parse.KindWorkout:
		if p.Workout != nil {
			line := p.Workout.Activity
			if p.Workout.Distance > 0 {
				line += fmt.Sprintf(", %g %s", p.Workout.Distance, p.Workout.DistanceUnit)
			}
			if p.Workout.DurationMinutes > 0 {
				line += fmt.Sprintf(", %g minutes", p.Workout.DurationMinutes)
			}
			if p.Workout.Intensity != "" {
				line += ", " + p.Workout.Intensity + " intensity"
			}
			return line
		}
	case parse.KindMood:
		if p.Mood != nil {
			return "feeling " + p.Mood.Mood
		}
	case parse.KindEnergy:
		if p.Energy != nil {
			return fmt.Sprintf("energy %d/10", p.Energy.Level)
		}
	case parse.KindSleep:
		if p.Sleep != nil {
			line := fmt.Sprintf("slept %g hours", p.Sleep.Hours)
			if p.Sleep.Quality != "" {
				line += ", " + p.Sleep.Quality
			}
			return line
		}
	case parse.KindWater:
		if p.Water != nil {
			return fmt.Sprintf("drank %g %s of water", p.Water.Amount, p.Water.Unit)
		}
	}
	return "unrecognized entry: " + activity.RawText
}
