package llm

import "github.com/invopop/jsonschema"

// GenerateSchema reflects a Go struct into a JSON schema suitable for
// strict structured output.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// extractedActivity is the wire shape the extraction model fills in. It is
// deliberately flat so strict mode can require every field; fields that
// don't apply to the chosen kind stay at their zero value.
type extractedActivity struct {
	Kind            string              `json:"kind" jsonschema:"enum=weight,enum=food,enum=workout,enum=mood,enum=energy,enum=sleep,enum=water,enum=unknown" jsonschema_description:"Category of the logged activity."`
	Confidence      float64             `json:"confidence" jsonschema_description:"Extraction confidence between 0 and 1."`
	WeightValue     float64             `json:"weight_value" jsonschema_description:"Body weight value. 0 unless kind is weight."`
	WeightUnit      string              `json:"weight_unit" jsonschema_description:"lbs or kg. Empty unless kind is weight."`
	FoodItems       []extractedFoodItem `json:"food_items" jsonschema_description:"Consumed items. Empty unless kind is food."`
	Meal            string              `json:"meal" jsonschema_description:"breakfast, lunch, dinner or snack. Empty if not stated."`
	WorkoutActivity string              `json:"workout_activity" jsonschema_description:"Exercise name such as running or yoga. Empty unless kind is workout."`
	DurationMinutes float64             `json:"duration_minutes" jsonschema_description:"Workout duration in minutes. 0 if not stated."`
	Distance        float64             `json:"distance" jsonschema_description:"Workout distance. 0 if not stated."`
	DistanceUnit    string              `json:"distance_unit" jsonschema_description:"km or miles. Empty if not stated."`
	Intensity       string              `json:"intensity" jsonschema_description:"low, medium or high. Empty if not stated."`
	Mood            string              `json:"mood" jsonschema_description:"great, good, okay, bad or terrible. Empty unless kind is mood."`
	EnergyLevel     int                 `json:"energy_level" jsonschema_description:"Energy level from 1 to 10. 0 unless kind is energy."`
	SleepHours      float64             `json:"sleep_hours" jsonschema_description:"Hours slept. 0 unless kind is sleep."`
	SleepQuality    string              `json:"sleep_quality" jsonschema_description:"Sleep quality such as well or poorly. Empty if not stated."`
	WaterAmount     float64             `json:"water_amount" jsonschema_description:"Water amount. 0 unless kind is water."`
	WaterUnit       string              `json:"water_unit" jsonschema_description:"oz, ml, cups or liters. Empty unless kind is water."`
}

type extractedFoodItem struct {
	Name     string  `json:"name" jsonschema_description:"Food item name."`
	Quantity float64 `json:"quantity" jsonschema_description:"How many of the item. 0 if not stated."`
}

// coachReply mirrors coach.Response on the wire.
type coachReply struct {
	Message       string   `json:"message" jsonschema_description:"Main coaching reply, under 200 characters, friendly and specific to what was logged."`
	Motivation    string   `json:"motivation" jsonschema_description:"One motivating sentence. Empty if the message covers it."`
	Insights      []string `json:"insights" jsonschema_description:"Short observations about the logged activity."`
	Challenge     string   `json:"challenge" jsonschema_description:"A small optional challenge for the user."`
	Encouragement string   `json:"encouragement" jsonschema_description:"A brief encouraging note."`
	NextSteps     []string `json:"next_steps" jsonschema_description:"Up to three concrete next steps."`
}

// patternReply mirrors coach.PatternAnalysis on the wire.
type patternReply struct {
	Trends          []string `json:"trends" jsonschema_description:"Observed trends across the activity history."`
	Recommendations []string `json:"recommendations" jsonschema_description:"Actionable recommendations based on the trends."`
	Achievements    []string `json:"achievements" jsonschema_description:"Things the user did well and should keep doing."`
}

var (
	extractionSchema = GenerateSchema[extractedActivity]()
	coachReplySchema = GenerateSchema[coachReply]()
	patternSchema    = GenerateSchema[patternReply]()
)
