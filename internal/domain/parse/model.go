package parse

// Kind is the closed set of activity categories a log entry can belong to.
type Kind string

const (
	KindWeight  Kind = "weight"
	KindFood    Kind = "food"
	KindWorkout Kind = "workout"
	KindMood    Kind = "mood"
	KindEnergy  Kind = "energy"
	KindSleep   Kind = "sleep"
	KindWater   Kind = "water"
	KindUnknown Kind = "unknown"
)

// Kinds lists every valid kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindWeight, KindFood, KindWorkout, KindMood, KindEnergy, KindSleep, KindWater, KindUnknown}
}

// Valid reports whether k is a member of the closed enumeration.
func (k Kind) Valid() bool {
	switch k {
	case KindWeight, KindFood, KindWorkout, KindMood, KindEnergy, KindSleep, KindWater, KindUnknown:
		return true
	}
	return false
}

// Weight units.
const (
	UnitLbs = "lbs"
	UnitKg  = "kg"
)

// Water units.
const (
	UnitOz     = "oz"
	UnitMl     = "ml"
	UnitCups   = "cups"
	UnitLiters = "liters"
)

// Distance units.
const (
	UnitKm    = "km"
	UnitMiles = "miles"
)

// Intensity levels for workouts.
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// Mood values.
const (
	MoodGreat    = "great"
	MoodGood     = "good"
	MoodOkay     = "okay"
	MoodBad      = "bad"
	MoodTerrible = "terrible"
)

// Meal slots for food entries.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// WeightPayload holds a body-weight measurement.
type WeightPayload struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// FoodItem is a single consumed item within a food entry.
type FoodItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Calories int     `json:"calories,omitempty"`
}

// FoodPayload holds one or more consumed items, optionally tied to a meal slot.
type FoodPayload struct {
	Items []FoodItem `json:"items"`
	Meal  string     `json:"meal,omitempty"`
}

// WorkoutSet is a single strength set.
type WorkoutSet struct {
	Reps       int     `json:"reps,omitempty"`
	Weight     float64 `json:"weight,omitempty"`
	WeightUnit string  `json:"weight_unit,omitempty"`
}

// WorkoutPayload describes an exercise session.
type WorkoutPayload struct {
	Activity        string       `json:"activity"`
	DurationMinutes float64      `json:"duration_minutes,omitempty"`
	Distance        float64      `json:"distance,omitempty"`
	DistanceUnit    string       `json:"distance_unit,omitempty"`
	Sets            []WorkoutSet `json:"sets,omitempty"`
	Intensity       string       `json:"intensity,omitempty"`
}

// MoodPayload holds a mood check-in.
type MoodPayload struct {
	Mood  string `json:"mood"`
	Notes string `json:"notes,omitempty"`
}

// EnergyPayload holds a 1-10 energy level.
type EnergyPayload struct {
	Level int `json:"level"`
}

// SleepPayload holds a sleep report.
type SleepPayload struct {
	Hours   float64 `json:"hours"`
	Quality string  `json:"quality,omitempty"`
}

// WaterPayload holds a hydration entry.
type WaterPayload struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// UnknownPayload carries the original text when no extraction succeeded.
type UnknownPayload struct {
	OriginalText string `json:"original_text"`
	ErrorDetail  string `json:"error_detail,omitempty"`
}

// Payload is a tagged union: exactly one field is non-nil, matching the
// Activity's Kind. New kinds must be added here and in Kinds().
type Payload struct {
	Weight  *WeightPayload  `json:"weight,omitempty"`
	Food    *FoodPayload    `json:"food,omitempty"`
	Workout *WorkoutPayload `json:"workout,omitempty"`
	Mood    *MoodPayload    `json:"mood,omitempty"`
	Energy  *EnergyPayload  `json:"energy,omitempty"`
	Sleep   *SleepPayload   `json:"sleep,omitempty"`
	Water   *WaterPayload   `json:"water,omitempty"`
	Unknown *UnknownPayload `json:"unknown,omitempty"`
}

// Activity is an immutable extraction result. Confidence is in [0,1]:
// fast-path matches report at least 0.85, failed extractions report 0.1.
type Activity struct {
	Kind       Kind    `json:"kind"`
	Payload    Payload `json:"payload"`
	Confidence float64 `json:"confidence"`
	RawText    string  `json:"raw_text"`
}

// FailedConfidence is reported when neither local rules nor the remote
// extractor produced a usable result.
const FailedConfidence = 0.1

// Unknown builds the fallback activity for text that could not be parsed.
func Unknown(rawText, errorDetail string) Activity {
	return Activity{
		Kind: KindUnknown,
		Payload: Payload{
			Unknown: &UnknownPayload{OriginalText: rawText, ErrorDetail: errorDetail},
		},
		Confidence: FailedConfidence,
		RawText:    rawText,
	}
}

// ClampConfidence bounds a model-reported confidence to [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
