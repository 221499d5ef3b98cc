package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

const extractionSystemPrompt = `You extract health and fitness activities from short free-text log entries.
Classify each entry as one of: weight, food, workout, mood, energy, sleep, water, unknown.
Fill only the fields that belong to the chosen kind and leave the rest at zero or empty.
Report a confidence between 0 and 1; use unknown with low confidence when the text is not a health activity.

Examples:
"weight 175" -> kind weight, weight_value 175, weight_unit lbs
"ate eggs and toast for breakfast" -> kind food, food_items [eggs, toast], meal breakfast
"ran 5k in 25 minutes" -> kind workout, workout_activity running, distance 5, distance_unit km, duration_minutes 25
"feeling great today" -> kind mood, mood great
"energy 8" -> kind energy, energy_level 8
"slept 7.5 hours" -> kind sleep, sleep_hours 7.5
"drank 3 glasses of water" -> kind water, water_amount 3, water_unit cups`

// Extractor asks a remote model to parse free text into a typed activity.
// Any failure falls back to local rules, then to an unknown activity; the
// error return from Extract is always nil so the orchestrator only sees
// failure as low confidence.
type Extractor struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewExtractor builds an Extractor from connection config.
func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: newClient(cfg),
		model:  cfg.ExtractionModel,
		logger: logger,
	}
}

// Extract parses text into an activity. Never returns an error.
func (e *Extractor) Extract(ctx context.Context, text string) (parse.Activity, error) {
	activity, err := e.extractRemote(ctx, text)
	if err == nil {
		return activity, nil
	}

	e.logger.Warn("remote extraction failed, falling back to local rules", "error", err)
	if local, ok := parse.Match(text); ok {
		return local, nil
	}
	return parse.Unknown(text, err.Error()), nil
}

func (e *Extractor) extractRemote(ctx context.Context, text string) (parse.Activity, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "activity",
		Description: openai.String("Health activity extracted from the user's log entry"),
		Schema:      extractionSchema,
		Strict:      openai.Bool(true),
	}
	chat, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage(text),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: e.model,
	})
	if err != nil {
		return parse.Activity{}, fmt.Errorf("extraction call: %w", err)
	}
	if len(chat.Choices) == 0 {
		return parse.Activity{}, fmt.Errorf("extraction call: empty response")
	}

	var wire extractedActivity
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &wire); err != nil {
		return parse.Activity{}, fmt.Errorf("decode extraction: %w", err)
	}
	return toActivity(wire, text)
}

// toActivity converts the wire shape into the domain activity, validating
// that the model filled in the fields its chosen kind requires.
func toActivity(wire extractedActivity, rawText string) (parse.Activity, error) {
	activity := parse.Activity{
		Kind:       parse.Kind(wire.Kind),
		Confidence: parse.ClampConfidence(wire.Confidence),
		RawText:    rawText,
	}
	if !activity.Kind.Valid() {
		return parse.Activity{}, fmt.Errorf("invalid kind %q", wire.Kind)
	}

	switch activity.Kind {
	case parse.KindWeight:
		if wire.WeightValue <= 0 {
			return parse.Activity{}, fmt.Errorf("weight entry without a value")
		}
		unit := wire.WeightUnit
		if unit != parse.UnitKg {
			unit = parse.UnitLbs
		}
		activity.Payload.Weight = &parse.WeightPayload{Value: wire.WeightValue, Unit: unit}
	case parse.KindFood:
		if len(wire.FoodItems) == 0 {
			return parse.Activity{}, fmt.Errorf("food entry without items")
		}
		items := make([]parse.FoodItem, 0, len(wire.FoodItems))
		for _, item := range wire.FoodItems {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			items = append(items, parse.FoodItem{Name: name, Quantity: item.Quantity})
		}
		if len(items) == 0 {
			return parse.Activity{}, fmt.Errorf("food entry without items")
		}
		activity.Payload.Food = &parse.FoodPayload{Items: items, Meal: wire.Meal}
	case parse.KindWorkout:
		if strings.TrimSpace(wire.WorkoutActivity) == "" {
			return parse.Activity{}, fmt.Errorf("workout entry without an activity name")
		}
		activity.Payload.Workout = &parse.WorkoutPayload{
			Activity:        strings.TrimSpace(wire.WorkoutActivity),
			DurationMinutes: wire.DurationMinutes,
			Distance:        wire.Distance,
			DistanceUnit:    wire.DistanceUnit,
			Intensity:       wire.Intensity,
		}
	case parse.KindMood:
		if wire.Mood == "" {
			return parse.Activity{}, fmt.Errorf("mood entry without a mood")
		}
		activity.Payload.Mood = &parse.MoodPayload{Mood: wire.Mood}
	case parse.KindEnergy:
		if wire.EnergyLevel < 1 || wire.EnergyLevel > 10 {
			return parse.Activity{}, fmt.Errorf("energy level %d out of range", wire.EnergyLevel)
		}
		activity.Payload.Energy = &parse.EnergyPayload{Level: wire.EnergyLevel}
	case parse.KindSleep:
		if wire.SleepHours <= 0 {
			return parse.Activity{}, fmt.Errorf("sleep entry without hours")
		}
		activity.Payload.Sleep = &parse.SleepPayload{Hours: wire.SleepHours, Quality: wire.SleepQuality}
	case parse.KindWater:
		if wire.WaterAmount <= 0 {
			return parse.Activity{}, fmt.Errorf("water entry without an amount")
		}
		unit := wire.WaterUnit
		if unit == "" {
			unit = parse.UnitOz
		}
		activity.Payload.Water = &parse.WaterPayload{Amount: wire.WaterAmount, Unit: unit}
	case parse.KindUnknown:
		activity.Payload.Unknown = &parse.UnknownPayload{OriginalText: rawText}
		if activity.Confidence > parse.FailedConfidence {
			activity.Confidence = parse.FailedConfidence
		}
	}
	return activity, nil
}

// Ping checks that the extraction endpoint is reachable.
func (e *Extractor) Ping(ctx context.Context) error {
	return ping(ctx, e.client, e.model)
}
