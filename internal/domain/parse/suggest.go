package parse

import "strings"

// maxSuggestions caps how many example phrasings are offered for an
// ambiguous input.
const maxSuggestions = 3

type suggestionRule struct {
	keywords []string
	examples []string
}

// suggestionRules pair topic keywords with example phrasings the fast
// matcher understands. Purely local; no remote calls.
var suggestionRules = []suggestionRule{
	{
		keywords: []string{"eat", "ate", "food", "hungry", "meal", "breakfast", "lunch", "dinner", "snack"},
		examples: []string{
			"ate eggs and toast for breakfast",
			"ate a chicken salad for lunch",
			"eating a protein bar as a snack",
		},
	},
	{
		keywords: []string{"run", "ran", "walk", "workout", "exercise", "gym", "train", "lift"},
		examples: []string{
			"ran 5k in 25 minutes",
			"lifted weights for 45 minutes",
			"walked 2 miles",
		},
	},
	{
		keywords: []string{"sleep", "slept", "tired", "rest", "nap"},
		examples: []string{
			"slept 8 hours",
			"slept 6.5 hours, woke up tired",
		},
	},
	{
		keywords: []string{"water", "drink", "drank", "thirsty", "hydrate"},
		examples: []string{
			"drank 16 oz of water",
			"water 2 liters",
		},
	},
	{
		keywords: []string{"weight", "weigh", "scale"},
		examples: []string{
			"weight 175 lbs",
			"weighed in at 80 kg",
		},
	},
	{
		keywords: []string{"mood", "feel", "feeling", "stress"},
		examples: []string{
			"feeling good today",
			"mood: okay, bit stressed",
		},
	},
	{
		keywords: []string{"energy"},
		examples: []string{
			"energy 7",
			"energy level is 4 today",
		},
	},
}

var defaultSuggestions = []string{
	"weight 175 lbs",
	"ran 5k in 25 minutes",
	"slept 8 hours",
}

// Suggestions returns up to three example phrasings relevant to the input,
// for use when the pipeline could not make sense of it.
func Suggestions(text string) []string {
	lower := strings.ToLower(text)

	var out []string
	for _, rule := range suggestionRules {
		if !containsAny(lower, rule.keywords) {
			continue
		}
		for _, example := range rule.examples {
			if len(out) == maxSuggestions {
				return out
			}
			out = append(out, example)
		}
	}
	if len(out) == 0 {
		out = append(out, defaultSuggestions...)
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
