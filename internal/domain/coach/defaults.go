package coach

import "github.com/rowanvale/lifelog-mcp/internal/domain/parse"

// Defaults holds the canned output substituted when a remote coaching call
// fails. It is built once at construction and never mutated, so it is safe
// to share across concurrent pipeline invocations.
type Defaults struct {
	Responses map[parse.Kind]Response
	Missions  []string
}

// ResponseFor returns the canned response for a kind, falling back to the
// unknown-kind message for anything unmapped.
func (d Defaults) ResponseFor(kind parse.Kind) Response {
	if resp, ok := d.Responses[kind]; ok {
		return resp
	}
	return d.Responses[parse.KindUnknown]
}

// DefaultResponses returns the stock fallback table. Messages stay under
// 200 characters so the canned path honors the response size contract.
func DefaultResponses() Defaults {
	return Defaults{
		Responses: map[parse.Kind]Response{
			parse.KindWeight: {
				Message: "Weight logged. Tracking consistently is what makes the trend meaningful, keep it up.",
			},
			parse.KindFood: {
				Message: "Meal logged. Paying attention to what you eat is half the battle.",
			},
			parse.KindWorkout: {
				Message: "Workout logged. Nice work getting it done today.",
			},
			parse.KindMood: {
				Message: "Mood noted. Checking in with yourself regularly is a solid habit.",
			},
			parse.KindEnergy: {
				Message: "Energy level logged. Watch how it moves with your sleep and training.",
			},
			parse.KindSleep: {
				Message: "Sleep logged. Rest is where the gains actually happen.",
			},
			parse.KindWater: {
				Message: "Hydration logged. Small habit, big difference.",
			},
			parse.KindUnknown: {
				Message: "Got it, logged your note. Try phrasings like \"ran 5k in 25 minutes\" or \"weight 175\" so I can track the details.",
			},
		},
		Missions: []string{
			"Drink a glass of water before every meal today.",
			"Take a 15 minute walk after lunch.",
			"Log everything you eat today, no exceptions.",
			"Get to bed 30 minutes earlier tonight.",
			"Do 20 push-ups spread across the day.",
			"Stretch for 5 minutes when you wake up tomorrow.",
		},
	}
}

// keepLoggingAnalysis is returned when history is too short for real
// pattern analysis.
func keepLoggingAnalysis() PatternAnalysis {
	return PatternAnalysis{
		Trends: []string{"Not enough history yet to spot trends."},
		Recommendations: []string{
			"Keep logging daily. After a few more entries, patterns will start to show.",
		},
		Achievements: []string{},
	}
}
