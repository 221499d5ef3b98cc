package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Match attempts zero-latency rule-based extraction. Matchers run in a fixed
// priority order and the first hit wins; the order is the disambiguation
// policy (a bare number is weight before anything else). Match never calls
// out and never fails: a false return just tells the caller to escalate to
// the remote extractor.
func Match(text string) (Activity, bool) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Activity{}, false
	}
	lower := strings.ToLower(raw)

	for _, m := range matchers {
		if a, ok := m(raw, lower); ok {
			return a, true
		}
	}
	return Activity{}, false
}

type matcherFunc func(raw, lower string) (Activity, bool)

var matchers = []matcherFunc{
	matchWeight,
	matchEnergy,
	matchSleep,
	matchWater,
	matchFood,
	matchWorkout,
	matchMood,
}

var (
	reBareWeight    = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(lbs?|pounds?|kgs?|kilos?)?$`)
	reKeywordWeight = regexp.MustCompile(`\bweig(?:ht|hed|hing|h)\b(?:\s+in)?(?:\s+at)?(?:\s+is)?\s*:?\s*(\d+(?:\.\d+)?)\s*(lbs?|pounds?|kgs?|kilos?)?`)

	reEnergy = regexp.MustCompile(`\benergy\b(?:\s+level)?(?:\s+(?:is|at))?\s*:?\s*(\d{1,2})\b`)

	reSleepNum  = regexp.MustCompile(`\b(?:slept|sleep)\b[^0-9]*(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h\b)?`)
	reHoursOf   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\s+of\s+sleep\b`)
	reSleepGood = regexp.MustCompile(`\b(?:well|great|soundly|deeply)\b`)
	reSleepPoor = regexp.MustCompile(`\b(?:poorly|badly|terribly|restlessly)\b`)

	reWaterKw     = regexp.MustCompile(`\bwater\b|\bdrank\b|\bhydrat`)
	reWaterAmount = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(oz|ounces?|ml|milliliters?|cups?|glasses?|liters?|litres?|l)\b`)
	reWaterBare   = regexp.MustCompile(`\bwater\b[^0-9]*(\d+(?:\.\d+)?)\b`)

	reAteRest = regexp.MustCompile(`\b(?:ate|eating)\b\s+(.+)`)
	reHadRest = regexp.MustCompile(`\bhad\b\s+(.+)`)
	reMealKw  = regexp.MustCompile(`\b(breakfast|lunch|dinner|snack)\b`)
	reForMeal = regexp.MustCompile(`\s*(?:for|as(?:\s+a)?)\s+(?:breakfast|lunch|dinner|snack)\b\.?`)
	reItemQty = regexp.MustCompile(`^(\d+)\s+(.+)$`)

	reDistance = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kms?|k|mi|miles?)\b`)
	reMinutes  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:minutes?|mins?)\b`)
	reWkHours  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?)\b`)

	reMoodKw = regexp.MustCompile(`\bfeel(?:ing)?\b|\bmood\b`)
)

func matchWeight(raw, lower string) (Activity, bool) {
	// Purely numeric input with an optional unit token is always weight.
	if m := reBareWeight.FindStringSubmatch(lower); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		unit, hadUnit := normalizeWeightUnit(m[2])
		confidence := 0.85
		if hadUnit {
			confidence = 0.9
		}
		return weightActivity(raw, value, unit, confidence), true
	}
	if m := reKeywordWeight.FindStringSubmatch(lower); m != nil {
		value, _ := strconv.ParseFloat(m[1], 64)
		unit, hadUnit := normalizeWeightUnit(m[2])
		confidence := 0.93
		if hadUnit {
			confidence = 0.95
		}
		return weightActivity(raw, value, unit, confidence), true
	}
	return Activity{}, false
}

func weightActivity(raw string, value float64, unit string, confidence float64) Activity {
	return Activity{
		Kind:       KindWeight,
		Payload:    Payload{Weight: &WeightPayload{Value: value, Unit: unit}},
		Confidence: confidence,
		RawText:    raw,
	}
}

func normalizeWeightUnit(token string) (unit string, hadUnit bool) {
	switch token {
	case "kg", "kgs", "kilo", "kilos":
		return UnitKg, true
	case "lb", "lbs", "pound", "pounds":
		return UnitLbs, true
	default:
		return UnitLbs, false
	}
}

func matchEnergy(raw, lower string) (Activity, bool) {
	m := reEnergy.FindStringSubmatch(lower)
	if m == nil {
		return Activity{}, false
	}
	level, _ := strconv.Atoi(m[1])
	if level < 1 || level > 10 {
		return Activity{}, false
	}
	return Activity{
		Kind:       KindEnergy,
		Payload:    Payload{Energy: &EnergyPayload{Level: level}},
		Confidence: 0.9,
		RawText:    raw,
	}, true
}

func matchSleep(raw, lower string) (Activity, bool) {
	var hours float64
	if m := reSleepNum.FindStringSubmatch(lower); m != nil {
		hours, _ = strconv.ParseFloat(m[1], 64)
	} else if m := reHoursOf.FindStringSubmatch(lower); m != nil {
		hours, _ = strconv.ParseFloat(m[1], 64)
	} else {
		return Activity{}, false
	}
	if hours <= 0 || hours > 24 {
		return Activity{}, false
	}

	quality := ""
	if reSleepGood.MatchString(lower) {
		quality = "good"
	} else if reSleepPoor.MatchString(lower) {
		quality = "poor"
	}

	return Activity{
		Kind:       KindSleep,
		Payload:    Payload{Sleep: &SleepPayload{Hours: hours, Quality: quality}},
		Confidence: 0.9,
		RawText:    raw,
	}, true
}

func matchWater(raw, lower string) (Activity, bool) {
	if !reWaterKw.MatchString(lower) {
		return Activity{}, false
	}
	if m := reWaterAmount.FindStringSubmatch(lower); m != nil {
		amount, _ := strconv.ParseFloat(m[1], 64)
		unit := normalizeWaterUnit(m[2])
		return waterActivity(raw, amount, unit, 0.9), true
	}
	// "water 16" style, no unit token: assume ounces.
	if m := reWaterBare.FindStringSubmatch(lower); m != nil {
		amount, _ := strconv.ParseFloat(m[1], 64)
		return waterActivity(raw, amount, UnitOz, 0.85), true
	}
	return Activity{}, false
}

func waterActivity(raw string, amount float64, unit string, confidence float64) Activity {
	return Activity{
		Kind:       KindWater,
		Payload:    Payload{Water: &WaterPayload{Amount: amount, Unit: unit}},
		Confidence: confidence,
		RawText:    raw,
	}
}

func normalizeWaterUnit(token string) string {
	switch token {
	case "ml", "milliliter", "milliliters":
		return UnitMl
	case "cup", "cups", "glass", "glasses":
		return UnitCups
	case "l", "liter", "liters", "litre", "litres":
		return UnitLiters
	default:
		return UnitOz
	}
}

func matchFood(raw, lower string) (Activity, bool) {
	meal := ""
	if m := reMealKw.FindStringSubmatch(lower); m != nil {
		meal = m[1]
	}

	rest := ""
	if m := reAteRest.FindStringSubmatch(lower); m != nil {
		rest = m[1]
	} else if meal != "" {
		// "had a sandwich for lunch": the meal keyword disambiguates "had".
		if m := reHadRest.FindStringSubmatch(lower); m != nil {
			rest = m[1]
		}
	}
	if rest == "" {
		return Activity{}, false
	}

	rest = reForMeal.ReplaceAllString(rest, "")
	items := splitFoodItems(rest)
	if len(items) == 0 {
		return Activity{}, false
	}

	return Activity{
		Kind:       KindFood,
		Payload:    Payload{Food: &FoodPayload{Items: items, Meal: meal}},
		Confidence: 0.85,
		RawText:    raw,
	}, true
}

func splitFoodItems(rest string) []FoodItem {
	rest = strings.TrimSpace(rest)
	parts := strings.Split(rest, ",")
	var flat []string
	for _, p := range parts {
		for _, q := range strings.Split(p, " and ") {
			flat = append(flat, q)
		}
	}

	var items []FoodItem
	for _, part := range flat {
		name := strings.TrimSpace(part)
		for _, article := range []string{"a ", "an ", "some ", "my ", "the "} {
			name = strings.TrimPrefix(name, article)
		}
		name = strings.TrimSuffix(name, ".")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		item := FoodItem{Name: name}
		if m := reItemQty.FindStringSubmatch(name); m != nil {
			qty, _ := strconv.Atoi(m[1])
			item.Quantity = float64(qty)
			item.Name = m[2]
		}
		items = append(items, item)
	}
	return items
}

// workoutVerbs maps activity verbs to their canonical activity names. Word
// boundaries are mandatory: "ran" must not match inside "randomly".
var workoutVerbs = []struct {
	re       *regexp.Regexp
	activity string
}{
	{regexp.MustCompile(`\b(?:ran|run|running)\b`), "running"},
	{regexp.MustCompile(`\b(?:jogged|jogging|jog)\b`), "jogging"},
	{regexp.MustCompile(`\b(?:walked|walking|walk)\b`), "walking"},
	{regexp.MustCompile(`\b(?:hiked|hiking|hike)\b`), "hiking"},
	{regexp.MustCompile(`\b(?:cycled|cycling|biked|biking|bike)\b`), "cycling"},
	{regexp.MustCompile(`\b(?:swam|swimming|swim)\b`), "swimming"},
	{regexp.MustCompile(`\b(?:lifted|lifting|weights|deadlift(?:s|ed)?|squat(?:s|ted)?|bench(?:ed)?)\b`), "strength training"},
	{regexp.MustCompile(`\byoga\b`), "yoga"},
	{regexp.MustCompile(`\b(?:workout|worked\s+out|trained|training|exercised|gym)\b`), "workout"},
}

func matchWorkout(raw, lower string) (Activity, bool) {
	activity := ""
	for _, v := range workoutVerbs {
		if v.re.MatchString(lower) {
			activity = v.activity
			break
		}
	}
	if activity == "" {
		return Activity{}, false
	}

	payload := &WorkoutPayload{Activity: activity}

	if m := reDistance.FindStringSubmatch(lower); m != nil {
		payload.Distance, _ = strconv.ParseFloat(m[1], 64)
		payload.DistanceUnit = normalizeDistanceUnit(m[2])
	}
	if m := reMinutes.FindStringSubmatch(lower); m != nil {
		payload.DurationMinutes, _ = strconv.ParseFloat(m[1], 64)
	} else if m := reWkHours.FindStringSubmatch(lower); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		payload.DurationMinutes = hours * 60
	}
	payload.Intensity = detectIntensity(lower)

	confidence := 0.85
	if payload.Distance > 0 || payload.DurationMinutes > 0 {
		confidence = 0.9
	}

	return Activity{
		Kind:       KindWorkout,
		Payload:    Payload{Workout: payload},
		Confidence: confidence,
		RawText:    raw,
	}, true
}

func normalizeDistanceUnit(token string) string {
	switch token {
	case "mi", "mile", "miles":
		return UnitMiles
	default:
		return UnitKm
	}
}

var (
	reIntensityHigh   = regexp.MustCompile(`\b(?:hard|intense|brutal|all\s+out)\b`)
	reIntensityLow    = regexp.MustCompile(`\b(?:easy|light|gentle|recovery)\b`)
	reIntensityMedium = regexp.MustCompile(`\b(?:moderate|medium|steady)\b`)
)

func detectIntensity(lower string) string {
	switch {
	case reIntensityHigh.MatchString(lower):
		return IntensityHigh
	case reIntensityLow.MatchString(lower):
		return IntensityLow
	case reIntensityMedium.MatchString(lower):
		return IntensityMedium
	default:
		return ""
	}
}

// moodWords maps keywords to the closed mood scale, checked in order so that
// stronger words win over weaker ones.
var moodWords = []struct {
	re   *regexp.Regexp
	mood string
}{
	{regexp.MustCompile(`\b(?:terrible|awful|horrible|miserable)\b`), MoodTerrible},
	{regexp.MustCompile(`\b(?:great|amazing|fantastic|awesome|excellent)\b`), MoodGreat},
	{regexp.MustCompile(`\b(?:bad|down|sad|stressed|rough|tired|exhausted)\b`), MoodBad},
	{regexp.MustCompile(`\b(?:okay|ok|meh|so-so|alright)\b`), MoodOkay},
	{regexp.MustCompile(`\b(?:good|fine|happy|solid|content)\b`), MoodGood},
}

func matchMood(raw, lower string) (Activity, bool) {
	if !reMoodKw.MatchString(lower) {
		return Activity{}, false
	}
	for _, w := range moodWords {
		if w.re.MatchString(lower) {
			return Activity{
				Kind:       KindMood,
				Payload:    Payload{Mood: &MoodPayload{Mood: w.mood}},
				Confidence: 0.85,
				RawText:    raw,
			}, true
		}
	}
	return Activity{}, false
}

// Canonical renders an activity back into a phrasing the matcher itself
// recognizes. Round-tripping a canonical string reproduces the payload.
func Canonical(a Activity) string {
	switch a.Kind {
	case KindWeight:
		return fmt.Sprintf("weight %s %s", trimFloat(a.Payload.Weight.Value), a.Payload.Weight.Unit)
	case KindEnergy:
		return fmt.Sprintf("energy %d", a.Payload.Energy.Level)
	case KindSleep:
		return fmt.Sprintf("slept %s hours", trimFloat(a.Payload.Sleep.Hours))
	case KindWater:
		return fmt.Sprintf("water %s %s", trimFloat(a.Payload.Water.Amount), a.Payload.Water.Unit)
	case KindFood:
		names := make([]string, 0, len(a.Payload.Food.Items))
		for _, item := range a.Payload.Food.Items {
			names = append(names, item.Name)
		}
		s := "ate " + strings.Join(names, ", ")
		if a.Payload.Food.Meal != "" {
			s += " for " + a.Payload.Food.Meal
		}
		return s
	case KindWorkout:
		w := a.Payload.Workout
		s := canonicalWorkoutVerb(w.Activity)
		if w.Distance > 0 {
			s += fmt.Sprintf(" %s %s", trimFloat(w.Distance), w.DistanceUnit)
		}
		if w.DurationMinutes > 0 {
			s += fmt.Sprintf(" in %s minutes", trimFloat(w.DurationMinutes))
		}
		return s
	case KindMood:
		return "feeling " + a.Payload.Mood.Mood
	default:
		return a.RawText
	}
}

func canonicalWorkoutVerb(activity string) string {
	switch activity {
	case "running":
		return "ran"
	case "jogging":
		return "jogged"
	case "walking":
		return "walked"
	case "hiking":
		return "hiked"
	case "cycling":
		return "cycled"
	case "swimming":
		return "swam"
	case "strength training":
		return "lifted weights"
	case "yoga":
		return "yoga"
	default:
		return "workout"
	}
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
