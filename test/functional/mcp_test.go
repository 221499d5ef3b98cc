package functional_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rowanvale/lifelog-mcp/internal/testserver"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, s *testserver.TestServer, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.Session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "Tool %s returned error", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)

	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(textContent.Text)
		}
	}
	t.Fatalf("Tool %s returned no text content", name)
	return nil
}

func TestFunctional_LogAndRecall(t *testing.T) {
	s := testserver.New(t)

	logResp := callTool(t, s, "log_activity", map[string]any{"text": "weight 175"})
	var logged struct {
		Activity struct {
			Kind       string  `json:"kind"`
			Confidence float64 `json:"confidence"`
		} `json:"parsed_activity"`
		Response struct {
			Message string `json:"message"`
		} `json:"coach_response"`
		ShouldSave bool   `json:"should_save"`
		Saved      bool   `json:"saved"`
		EntryID    string `json:"entry_id"`
	}
	require.NoError(t, json.Unmarshal(logResp, &logged))
	require.Equal(t, "weight", logged.Activity.Kind)
	require.GreaterOrEqual(t, logged.Activity.Confidence, 0.9)
	require.NotEmpty(t, logged.Response.Message)
	require.True(t, logged.ShouldSave)
	require.True(t, logged.Saved)
	require.NotEmpty(t, logged.EntryID)

	recent := callTool(t, s, "get_recent_activities", nil)
	var listed struct {
		Activities []struct {
			ID      string `json:"id"`
			Kind    string `json:"kind"`
			RawText string `json:"raw_text"`
		} `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(recent, &listed))
	require.Len(t, listed.Activities, 1)
	require.Equal(t, logged.EntryID, listed.Activities[0].ID)
	require.Equal(t, "weight 175", listed.Activities[0].RawText)
}

func TestFunctional_UnparseableInputIsNotStored(t *testing.T) {
	s := testserver.New(t)

	logResp := callTool(t, s, "log_activity", map[string]any{"text": "qwerty asdf"})
	var logged struct {
		Activity struct {
			Kind string `json:"kind"`
		} `json:"parsed_activity"`
		Saved bool `json:"saved"`
	}
	require.NoError(t, json.Unmarshal(logResp, &logged))
	require.Equal(t, "unknown", logged.Activity.Kind)
	require.False(t, logged.Saved)

	recent := callTool(t, s, "get_recent_activities", nil)
	var listed struct {
		Activities []any `json:"activities"`
	}
	require.NoError(t, json.Unmarshal(recent, &listed))
	require.Empty(t, listed.Activities)
}

func TestFunctional_BatchKeepsOrder(t *testing.T) {
	s := testserver.New(t)

	resp := callTool(t, s, "log_batch", map[string]any{
		"texts": []string{"weight 175", "slept 8 hours", "drank 3 glasses of water"},
	})
	var batch struct {
		Results []struct {
			Activity struct {
				Kind string `json:"kind"`
			} `json:"parsed_activity"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(resp, &batch))
	require.Len(t, batch.Results, 3)
	require.Equal(t, "weight", batch.Results[0].Activity.Kind)
	require.Equal(t, "sleep", batch.Results[1].Activity.Kind)
	require.Equal(t, "water", batch.Results[2].Activity.Kind)
}

func TestFunctional_SuggestionsAndMission(t *testing.T) {
	s := testserver.New(t)

	suggResp := callTool(t, s, "get_suggestions", map[string]any{"text": "did some exercise"})
	var suggestions struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(suggResp, &suggestions))
	require.NotEmpty(t, suggestions.Suggestions)
	require.LessOrEqual(t, len(suggestions.Suggestions), 3)

	missionResp := callTool(t, s, "daily_mission", nil)
	var mission struct {
		Mission string `json:"mission"`
	}
	require.NoError(t, json.Unmarshal(missionResp, &mission))
	require.NotEmpty(t, mission.Mission)
}

func TestFunctional_PatternsAndHealth(t *testing.T) {
	s := testserver.New(t)

	callTool(t, s, "log_activity", map[string]any{"text": "weight 175"})
	callTool(t, s, "log_activity", map[string]any{"text": "slept 8 hours"})

	patternsResp := callTool(t, s, "analyze_patterns", nil)
	var patterns struct {
		Recommendations []string `json:"recommendations"`
		ActivityCount   int      `json:"activity_count"`
	}
	require.NoError(t, json.Unmarshal(patternsResp, &patterns))
	require.Equal(t, 2, patterns.ActivityCount)
	require.NotEmpty(t, patterns.Recommendations)

	healthResp := callTool(t, s, "health_check", nil)
	var health struct {
		ExtractionOK bool     `json:"extraction_ok"`
		CoachingOK   bool     `json:"coaching_ok"`
		DatabaseOK   bool     `json:"database_ok"`
		Errors       []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(healthResp, &health))
	require.False(t, health.ExtractionOK)
	require.False(t, health.CoachingOK)
	require.True(t, health.DatabaseOK)
	require.Len(t, health.Errors, 2)
}
