package coach_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
	"github.com/rowanvale/lifelog-mcp/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(extractor coach.Extractor, responder coach.Responder, opts coach.Options) *coach.Service {
	return coach.NewService(extractor, responder, coach.DefaultResponses(), opts, nil)
}

// fakeExtractor and fakeResponder allow per-call behavior where testify's
// static returns are too rigid.
type fakeExtractor struct {
	extract func(ctx context.Context, text string) (parse.Activity, error)
}

func (f *fakeExtractor) Extract(ctx context.Context, text string) (parse.Activity, error) {
	return f.extract(ctx, text)
}

func (f *fakeExtractor) Ping(ctx context.Context) error { return nil }

type fakeResponder struct {
	respond func(ctx context.Context, text string, activity parse.Activity, user coach.UserContext) (coach.Response, error)
}

func (f *fakeResponder) Respond(ctx context.Context, text string, activity parse.Activity, user coach.UserContext) (coach.Response, error) {
	return f.respond(ctx, text, activity, user)
}

func (f *fakeResponder) DailyMission(ctx context.Context, user coach.UserContext) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeResponder) AnalyzePatterns(ctx context.Context, activities []parse.Activity) (coach.PatternAnalysis, error) {
	return coach.PatternAnalysis{}, errors.New("not implemented")
}

func (f *fakeResponder) Ping(ctx context.Context) error { return nil }

func TestProcessInput_FastPathSkipsRemoteExtraction(t *testing.T) {
	ctx := context.Background()

	extractor := &mocks.Extractor{}
	responder := &mocks.Responder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(coach.Response{Message: "nice"}, nil)

	svc := newService(extractor, responder, coach.Options{})
	result := svc.ProcessInput(ctx, "weight 175", coach.UserContext{})

	require.Equal(t, parse.KindWeight, result.Activity.Kind)
	require.Equal(t, 175.0, result.Activity.Payload.Weight.Value)
	require.True(t, result.ShouldSave)
	require.Empty(t, result.Error)
	require.Equal(t, "nice", result.Response.Message)
	extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
}

func TestProcessInput_EscalatesToRemoteExtractor(t *testing.T) {
	ctx := context.Background()
	text := "asdkjasjd random gibberish"

	extracted := parse.Activity{
		Kind:       parse.KindMood,
		Payload:    parse.Payload{Mood: &parse.MoodPayload{Mood: parse.MoodGood}},
		Confidence: 0.7,
		RawText:    text,
	}

	extractor := &mocks.Extractor{}
	extractor.On("Extract", mock.Anything, text).Return(extracted, nil)
	responder := &mocks.Responder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(coach.Response{Message: "noted"}, nil)

	svc := newService(extractor, responder, coach.Options{})
	result := svc.ProcessInput(ctx, text, coach.UserContext{})

	require.Equal(t, parse.KindMood, result.Activity.Kind)
	require.True(t, result.ShouldSave)
	extractor.AssertNumberOfCalls(t, "Extract", 1)
}

func TestProcessInput_ShouldSaveProperty(t *testing.T) {
	ctx := context.Background()

	confidences := []float64{0.0, 0.1, 0.5, 0.6, 0.61, 0.9, 1.0}
	for _, kind := range parse.Kinds() {
		for _, confidence := range confidences {
			activity := parse.Activity{Kind: kind, Confidence: confidence, RawText: "x"}

			extractor := &fakeExtractor{extract: func(ctx context.Context, text string) (parse.Activity, error) {
				return activity, nil
			}}
			responder := &fakeResponder{respond: func(ctx context.Context, text string, a parse.Activity, u coach.UserContext) (coach.Response, error) {
				return coach.Response{Message: "ok"}, nil
			}}

			svc := newService(extractor, responder, coach.Options{})
			result := svc.ProcessInput(ctx, "zzz unparseable input", coach.UserContext{})

			want := confidence > 0.6 && kind != parse.KindUnknown
			require.Equal(t, want, result.ShouldSave, "kind=%s confidence=%v", kind, confidence)
		}
	}
}

func TestProcessInput_ExtractionFailureYieldsFallback(t *testing.T) {
	ctx := context.Background()
	text := "asdkjasjd random gibberish"

	extractor := &mocks.Extractor{}
	extractor.On("Extract", mock.Anything, text).Return(parse.Activity{}, errors.New("service unavailable"))
	responder := &mocks.Responder{}

	svc := newService(extractor, responder, coach.Options{})
	result := svc.ProcessInput(ctx, text, coach.UserContext{})

	require.Equal(t, parse.KindUnknown, result.Activity.Kind)
	require.Equal(t, parse.FailedConfidence, result.Activity.Confidence)
	require.False(t, result.ShouldSave)
	require.NotEmpty(t, result.Error)
	require.NotEmpty(t, result.Response.Message)
	responder.AssertNotCalled(t, "Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessInput_TimeoutsResolveWithinBound(t *testing.T) {
	ctx := context.Background()
	timeout := 50 * time.Millisecond

	// Both clients hang well past the timeout; the pipeline must still
	// resolve within roughly two timeout windows.
	extractor := &fakeExtractor{extract: func(ctx context.Context, text string) (parse.Activity, error) {
		<-ctx.Done()
		return parse.Activity{}, ctx.Err()
	}}
	responder := &fakeResponder{respond: func(ctx context.Context, text string, a parse.Activity, u coach.UserContext) (coach.Response, error) {
		<-ctx.Done()
		return coach.Response{}, ctx.Err()
	}}

	svc := newService(extractor, responder, coach.Options{Timeout: timeout})

	start := time.Now()
	result := svc.ProcessInput(ctx, "zzz unparseable input", coach.UserContext{})
	elapsed := time.Since(start)

	require.Less(t, elapsed, 2*timeout+200*time.Millisecond)
	require.Equal(t, parse.KindUnknown, result.Activity.Kind)
	require.False(t, result.ShouldSave)
	require.Contains(t, result.Error, "timed out")
}

func TestProcessInput_CoachingFailureKeepsExtraction(t *testing.T) {
	ctx := context.Background()

	extractor := &mocks.Extractor{}
	responder := &mocks.Responder{}
	responder.On("Respond", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(coach.Response{}, errors.New("coach down"))

	svc := newService(extractor, responder, coach.Options{})
	result := svc.ProcessInput(ctx, "weight 175", coach.UserContext{})

	// The successful extraction survives a failed coaching call.
	require.Equal(t, parse.KindWeight, result.Activity.Kind)
	require.True(t, result.ShouldSave)
	require.NotEmpty(t, result.Error)

	canned := coach.DefaultResponses().ResponseFor(parse.KindWeight)
	require.Equal(t, canned.Message, result.Response.Message)
}

func TestProcessInput_EmptyInput(t *testing.T) {
	svc := newService(&mocks.Extractor{}, &mocks.Responder{}, coach.Options{})
	result := svc.ProcessInput(context.Background(), "   ", coach.UserContext{})

	require.Equal(t, parse.KindUnknown, result.Activity.Kind)
	require.False(t, result.ShouldSave)
	require.NotEmpty(t, result.Error)
	require.NotEmpty(t, result.Response.Message)
}

func TestProcessBatch_PreservesOrder(t *testing.T) {
	ctx := context.Background()

	// Later items settle faster than earlier ones; output order must still
	// match input order.
	extractor := &fakeExtractor{extract: func(ctx context.Context, text string) (parse.Activity, error) {
		if text == "note 0" {
			time.Sleep(30 * time.Millisecond)
		}
		return parse.Activity{
			Kind:       parse.KindMood,
			Payload:    parse.Payload{Mood: &parse.MoodPayload{Mood: parse.MoodOkay}},
			Confidence: 0.7,
			RawText:    text,
		}, nil
	}}
	responder := &fakeResponder{respond: func(ctx context.Context, text string, a parse.Activity, u coach.UserContext) (coach.Response, error) {
		return coach.Response{Message: "ok"}, nil
	}}

	svc := newService(extractor, responder, coach.Options{BatchSize: 3})

	texts := make([]string, 7)
	for i := range texts {
		texts[i] = fmt.Sprintf("note %d", i)
	}

	results := svc.ProcessBatch(ctx, texts, coach.UserContext{})
	require.Len(t, results, 7)
	for i, r := range results {
		require.Equal(t, texts[i], r.Activity.RawText, "index %d", i)
	}
}

func TestProcessBatch_Empty(t *testing.T) {
	svc := newService(&mocks.Extractor{}, &mocks.Responder{}, coach.Options{})
	require.Empty(t, svc.ProcessBatch(context.Background(), nil, coach.UserContext{}))
}

func TestGenerateDailyMission_RemoteSuccess(t *testing.T) {
	responder := &mocks.Responder{}
	responder.On("DailyMission", mock.Anything, mock.Anything).Return("  Walk 10k steps today.  ", nil)

	svc := newService(&mocks.Extractor{}, responder, coach.Options{})
	mission := svc.GenerateDailyMission(context.Background(), coach.UserContext{})
	require.Equal(t, "Walk 10k steps today.", mission)
}

func TestGenerateDailyMission_FallsBackToStock(t *testing.T) {
	responder := &mocks.Responder{}
	responder.On("DailyMission", mock.Anything, mock.Anything).Return("", errors.New("down"))

	svc := newService(&mocks.Extractor{}, responder, coach.Options{})
	mission := svc.GenerateDailyMission(context.Background(), coach.UserContext{})
	require.NotEmpty(t, mission)
	require.Contains(t, coach.DefaultResponses().Missions, mission)
}

func TestAnalyzeUserPatterns_ShortHistorySkipsRemote(t *testing.T) {
	responder := &mocks.Responder{}

	svc := newService(&mocks.Extractor{}, responder, coach.Options{})
	activities := []parse.Activity{
		{Kind: parse.KindWeight}, {Kind: parse.KindSleep}, {Kind: parse.KindWorkout}, {Kind: parse.KindMood},
	}

	analysis := svc.AnalyzeUserPatterns(context.Background(), activities)
	require.NotEmpty(t, analysis.Trends)
	require.Contains(t, analysis.Trends[0], "Not enough history")
	responder.AssertNotCalled(t, "AnalyzePatterns", mock.Anything, mock.Anything)
}

func TestAnalyzeUserPatterns_RemoteFailureUsesLocalHeuristic(t *testing.T) {
	responder := &mocks.Responder{}
	responder.On("AnalyzePatterns", mock.Anything, mock.Anything).
		Return(coach.PatternAnalysis{}, errors.New("down"))

	svc := newService(&mocks.Extractor{}, responder, coach.Options{})

	var activities []parse.Activity
	for i := 0; i < 6; i++ {
		activities = append(activities, parse.Activity{Kind: parse.KindWorkout})
	}

	analysis := svc.AnalyzeUserPatterns(context.Background(), activities)
	require.Contains(t, analysis.Trends, "Consistent workout habit forming.")

	foundHydration := false
	for _, rec := range analysis.Recommendations {
		if strings.Contains(rec, "water") {
			foundHydration = true
		}
	}
	require.True(t, foundHydration, "expected a hydration recommendation")
}

func TestAnalyzeUserPatterns_RemoteSuccess(t *testing.T) {
	want := coach.PatternAnalysis{
		Trends:          []string{"trend"},
		Recommendations: []string{"rec"},
		Achievements:    []string{"ach"},
	}
	responder := &mocks.Responder{}
	responder.On("AnalyzePatterns", mock.Anything, mock.Anything).Return(want, nil)

	svc := newService(&mocks.Extractor{}, responder, coach.Options{})
	activities := make([]parse.Activity, 5)
	require.Equal(t, want, svc.AnalyzeUserPatterns(context.Background(), activities))
}

func TestValidateConnections(t *testing.T) {
	extractor := &mocks.Extractor{}
	extractor.On("Ping", mock.Anything).Return(nil)
	responder := &mocks.Responder{}
	responder.On("Ping", mock.Anything).Return(errors.New("401 unauthorized"))

	svc := newService(extractor, responder, coach.Options{})
	status := svc.ValidateConnections(context.Background())

	require.True(t, status.ExtractionOK)
	require.False(t, status.CoachingOK)
	require.Len(t, status.Errors, 1)
	require.Contains(t, status.Errors[0], "coaching")
}

func TestGetSuggestions(t *testing.T) {
	svc := newService(&mocks.Extractor{}, &mocks.Responder{}, coach.Options{})
	got := svc.GetSuggestions("I want to eat something")
	require.NotEmpty(t, got)
	require.LessOrEqual(t, len(got), 3)
}
