package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `lifelog turns plain-language health notes into structured activity logs with coaching.

Core flow:
- log_activity("weight 175" / "ran 5k in 25 minutes" / "feeling great") parses the text,
  replies with coaching, and stores the entry when the parse is confident enough.
- log_batch processes several notes at once; results keep input order.
- get_recent_activities lists what has been stored, most recent first.
- If a note comes back as "unknown", call get_suggestions with the same text to show
  the user example phrasings that parse well.
- daily_mission returns one concrete action for today.
- analyze_patterns summarizes trends once enough history exists (it answers with a
  generic "keep logging" message below five entries).
- health_check reports model endpoint and database connectivity.

Notes:
- Pass goals/mood/energy_level on log_activity to personalize the coaching reply.
- Entries parsed with low confidence are not stored; the reply still includes the
  parse so the user can rephrase.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "lifelog://docs/logging",
		Name:        "docs_logging",
		Title:       "Logging phrasebook",
		Description: "Example phrasings per activity category and how they are parsed.",
		Content: `# Logging phrasebook

One short sentence per entry works best. Examples by category:

- Weight: "weight 175", "weighed in at 80 kg", "175 lbs"
- Food: "ate eggs and toast for breakfast", "had a salad for lunch"
- Workout: "ran 5k in 25 minutes", "lifted weights for 45 minutes", "did yoga"
- Mood: "feeling great", "feeling tired today"
- Energy: "energy 7"
- Sleep: "slept 7.5 hours", "got 8 hours of sleep"
- Water: "drank 3 glasses of water", "water 16 oz"

A bare number is treated as a body weight in lbs.

Entries the parser cannot classify come back as kind "unknown" with low
confidence and are not stored. Rephrase using one of the patterns above, or
call get_suggestions for tailored examples.
`,
	},
	{
		URI:         "lifelog://docs/coaching",
		Name:        "docs_coaching",
		Title:       "Coaching behavior",
		Description: "What the coaching reply contains and how failures degrade.",
		Content: `# Coaching behavior

Every log_activity call returns a coach_response with at least a message.
Richer replies may add motivation, insights, a challenge and next steps.

The server degrades gracefully:

- If the remote extraction model is slow or down, local parsing rules take over.
- If the coaching model fails, a stock reply matched to the activity category
  is substituted and the parsed activity is kept.
- The "error" field reports what failed; the rest of the result stays usable.

analyze_patterns behaves the same way: below five stored entries it answers
locally, and if the remote analysis fails a simple tally-based summary is
returned instead.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
