package parse_test

import (
	"testing"

	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
	"github.com/stretchr/testify/require"
)

func TestMatch_WeightPhrasings(t *testing.T) {
	tests := []struct {
		input string
		value float64
		unit  string
	}{
		{"weight 175", 175, parse.UnitLbs},
		{"weight 175 lbs", 175, parse.UnitLbs},
		{"Weight: 80kg", 80, parse.UnitKg},
		{"weighed in at 172.5 lbs", 172.5, parse.UnitLbs},
		{"my weight is 175", 175, parse.UnitLbs},
		{"175", 175, parse.UnitLbs},
		{"175 lbs", 175, parse.UnitLbs},
		{"80 kg", 80, parse.UnitKg},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, ok := parse.Match(tt.input)
			require.True(t, ok)
			require.Equal(t, parse.KindWeight, a.Kind)
			require.NotNil(t, a.Payload.Weight)
			require.Equal(t, tt.value, a.Payload.Weight.Value)
			require.Equal(t, tt.unit, a.Payload.Weight.Unit)
			require.GreaterOrEqual(t, a.Confidence, 0.85)
			require.Equal(t, tt.input, a.RawText)
		})
	}
}

func TestMatch_WeightConfidenceFloor(t *testing.T) {
	a, ok := parse.Match("weight 175")
	require.True(t, ok)
	require.GreaterOrEqual(t, a.Confidence, 0.9)
}

func TestMatch_BareNumberIsAlwaysWeight(t *testing.T) {
	// A number with nothing but a unit token never becomes another kind.
	for _, input := range []string{"8", "8 lbs", "200"} {
		a, ok := parse.Match(input)
		require.True(t, ok, input)
		require.Equal(t, parse.KindWeight, a.Kind, input)
	}
}

func TestMatch_ExplicitKeywordBeatsWeight(t *testing.T) {
	a, ok := parse.Match("energy 8")
	require.True(t, ok)
	require.Equal(t, parse.KindEnergy, a.Kind)
	require.Equal(t, 8, a.Payload.Energy.Level)

	a, ok = parse.Match("slept 8 hours")
	require.True(t, ok)
	require.Equal(t, parse.KindSleep, a.Kind)
	require.Equal(t, 8.0, a.Payload.Sleep.Hours)

	a, ok = parse.Match("water 8 oz")
	require.True(t, ok)
	require.Equal(t, parse.KindWater, a.Kind)
}

func TestMatch_Workout(t *testing.T) {
	a, ok := parse.Match("ran 5k in 25 minutes")
	require.True(t, ok)
	require.Equal(t, parse.KindWorkout, a.Kind)
	w := a.Payload.Workout
	require.NotNil(t, w)
	require.Equal(t, "running", w.Activity)
	require.Equal(t, 5.0, w.Distance)
	require.Equal(t, parse.UnitKm, w.DistanceUnit)
	require.Equal(t, 25.0, w.DurationMinutes)
}

func TestMatch_WorkoutVariants(t *testing.T) {
	tests := []struct {
		input    string
		activity string
	}{
		{"walked 2 miles", "walking"},
		{"cycled for 1 hour", "cycling"},
		{"lifted weights for 45 minutes", "strength training"},
		{"did yoga this morning", "yoga"},
		{"went to the gym", "workout"},
	}
	for _, tt := range tests {
		a, ok := parse.Match(tt.input)
		require.True(t, ok, tt.input)
		require.Equal(t, parse.KindWorkout, a.Kind, tt.input)
		require.Equal(t, tt.activity, a.Payload.Workout.Activity, tt.input)
	}

	a, _ := parse.Match("cycled for 1 hour")
	require.Equal(t, 60.0, a.Payload.Workout.DurationMinutes)
}

func TestMatch_WordBoundaries(t *testing.T) {
	// "ran" inside "randomly" must not look like a run.
	_, ok := parse.Match("randomly thinking about stuff")
	require.False(t, ok)
}

func TestMatch_Sleep(t *testing.T) {
	a, ok := parse.Match("slept 8 hours")
	require.True(t, ok)
	require.Equal(t, parse.KindSleep, a.Kind)
	require.Equal(t, 8.0, a.Payload.Sleep.Hours)

	a, ok = parse.Match("slept 6.5 hours, woke up tired")
	require.True(t, ok)
	require.Equal(t, 6.5, a.Payload.Sleep.Hours)

	a, ok = parse.Match("slept really well for 9 hours")
	require.True(t, ok)
	require.Equal(t, "good", a.Payload.Sleep.Quality)
}

func TestMatch_Water(t *testing.T) {
	tests := []struct {
		input  string
		amount float64
		unit   string
	}{
		{"drank 16 oz of water", 16, parse.UnitOz},
		{"water 2 liters", 2, parse.UnitLiters},
		{"drank 3 glasses of water", 3, parse.UnitCups},
		{"500 ml water", 500, parse.UnitMl},
	}
	for _, tt := range tests {
		a, ok := parse.Match(tt.input)
		require.True(t, ok, tt.input)
		require.Equal(t, parse.KindWater, a.Kind, tt.input)
		require.Equal(t, tt.amount, a.Payload.Water.Amount, tt.input)
		require.Equal(t, tt.unit, a.Payload.Water.Unit, tt.input)
	}
}

func TestMatch_Food(t *testing.T) {
	a, ok := parse.Match("ate eggs and toast for breakfast")
	require.True(t, ok)
	require.Equal(t, parse.KindFood, a.Kind)
	f := a.Payload.Food
	require.Equal(t, parse.MealBreakfast, f.Meal)
	require.Len(t, f.Items, 2)
	require.Equal(t, "eggs", f.Items[0].Name)
	require.Equal(t, "toast", f.Items[1].Name)

	a, ok = parse.Match("had a sandwich for lunch")
	require.True(t, ok)
	require.Equal(t, parse.KindFood, a.Kind)
	require.Equal(t, parse.MealLunch, a.Payload.Food.Meal)
	require.Equal(t, "sandwich", a.Payload.Food.Items[0].Name)

	a, ok = parse.Match("ate 2 apples")
	require.True(t, ok)
	require.Equal(t, 2.0, a.Payload.Food.Items[0].Quantity)
	require.Equal(t, "apples", a.Payload.Food.Items[0].Name)
}

func TestMatch_HadWithoutMealIsNotFood(t *testing.T) {
	// "had" alone is too ambiguous; only a meal keyword disambiguates it.
	a, ok := parse.Match("had a great run this morning")
	require.True(t, ok)
	require.Equal(t, parse.KindWorkout, a.Kind)
}

func TestMatch_Mood(t *testing.T) {
	tests := []struct {
		input string
		mood  string
	}{
		{"feeling great today", parse.MoodGreat},
		{"feeling good", parse.MoodGood},
		{"mood is okay", parse.MoodOkay},
		{"feeling tired and stressed", parse.MoodBad},
		{"feeling terrible", parse.MoodTerrible},
	}
	for _, tt := range tests {
		a, ok := parse.Match(tt.input)
		require.True(t, ok, tt.input)
		require.Equal(t, parse.KindMood, a.Kind, tt.input)
		require.Equal(t, tt.mood, a.Payload.Mood.Mood, tt.input)
	}
}

func TestMatch_DeclinesGibberish(t *testing.T) {
	for _, input := range []string{"", "   ", "asdkjasjd random gibberish", "thinking about the weekend"} {
		_, ok := parse.Match(input)
		require.False(t, ok, input)
	}
}

func TestMatch_CanonicalRoundTrip(t *testing.T) {
	inputs := []string{
		"weight 175 lbs",
		"energy 7",
		"slept 8 hours",
		"water 16 oz",
		"ate eggs for breakfast",
		"ran 5 km in 25 minutes",
		"feeling good",
	}
	for _, input := range inputs {
		first, ok := parse.Match(input)
		require.True(t, ok, input)

		second, ok := parse.Match(parse.Canonical(first))
		require.True(t, ok, input)
		require.Equal(t, first.Kind, second.Kind, input)
		require.Equal(t, first.Payload, second.Payload, input)
	}
}

func TestUnknown(t *testing.T) {
	a := parse.Unknown("blah", "extraction failed")
	require.Equal(t, parse.KindUnknown, a.Kind)
	require.Equal(t, parse.FailedConfidence, a.Confidence)
	require.Equal(t, "blah", a.Payload.Unknown.OriginalText)
	require.Equal(t, "extraction failed", a.Payload.Unknown.ErrorDetail)
}
