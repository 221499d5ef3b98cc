package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// minHistoryForAnalysis is the history length below which pattern analysis
// never issues a remote call.
const minHistoryForAnalysis = 5

// Options tunes the orchestrator. Zero values fall back to defaults so
// callers only set what they care about.
type Options struct {
	Timeout         time.Duration // per remote call in the main pipeline
	MissionTimeout  time.Duration
	AnalysisTimeout time.Duration
	ProbeTimeout    time.Duration
	BatchSize       int
	SaveThreshold   float64
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	if o.MissionTimeout <= 0 {
		o.MissionTimeout = 3 * time.Second
	}
	if o.AnalysisTimeout <= 0 {
		o.AnalysisTimeout = 10 * time.Second
	}
	if o.ProbeTimeout <= 0 {
		o.ProbeTimeout = 2 * time.Second
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 5
	}
	if o.SaveThreshold <= 0 {
		o.SaveThreshold = 0.6
	}
	return o
}

// Service orchestrates extraction and coaching. Every public method has a
// total contract: it always returns a usable value and never lets a remote
// failure escape as an error or panic.
type Service struct {
	extractor Extractor
	responder Responder
	defaults  Defaults
	opts      Options
	logger    *slog.Logger
}

// NewService creates the orchestrator. The defaults table is injected so
// canned output stays configurable and testable.
func NewService(extractor Extractor, responder Responder, defaults Defaults, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		extractor: extractor,
		responder: responder,
		defaults:  defaults,
		opts:      opts.withDefaults(),
		logger:    logger,
	}
}

// ProcessInput runs the full pipeline for one text: local rules first, the
// remote extractor only when the rules decline, then coaching. Both remote
// calls run under independent timeout races.
func (s *Service) ProcessInput(ctx context.Context, text string, user UserContext) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Activity: parse.Unknown(text, ErrEmptyInput.Error()),
			Response: s.defaults.ResponseFor(parse.KindUnknown),
			Error:    ErrEmptyInput.Error(),
		}
	}

	activity, ok := parse.Match(text)
	if ok {
		s.logger.Debug("fast path extraction", "kind", activity.Kind, "confidence", activity.Confidence)
	} else {
		var err error
		activity, err = runWithTimeout(ctx, s.opts.Timeout, func(ctx context.Context) (parse.Activity, error) {
			return s.extractor.Extract(ctx, text)
		})
		if err != nil {
			s.logger.Warn("extraction failed", "error", err)
			return Result{
				Activity: parse.Unknown(text, err.Error()),
				Response: s.defaults.ResponseFor(parse.KindUnknown),
				Error:    err.Error(),
			}
		}
	}

	result := Result{
		Activity:   activity,
		ShouldSave: s.shouldSave(activity),
	}

	resp, err := runWithTimeout(ctx, s.opts.Timeout, func(ctx context.Context) (Response, error) {
		return s.responder.Respond(ctx, text, activity, user)
	})
	if err != nil {
		s.logger.Warn("coaching failed, substituting canned response", "kind", activity.Kind, "error", err)
		result.Response = s.defaults.ResponseFor(activity.Kind)
		result.Error = err.Error()
		return result
	}
	if resp.Message == "" {
		resp.Message = s.defaults.ResponseFor(activity.Kind).Message
	}
	result.Response = resp
	return result
}

func (s *Service) shouldSave(activity parse.Activity) bool {
	return activity.Confidence > s.opts.SaveThreshold && activity.Kind != parse.KindUnknown
}

// ProcessBatch processes texts in fixed-size chunks. Items within a chunk
// run concurrently; chunk n+1 does not start until chunk n has fully
// settled, bounding concurrent remote calls to the chunk size. Output order
// matches input order.
func (s *Service) ProcessBatch(ctx context.Context, texts []string, user UserContext) []Result {
	results := make([]Result, len(texts))
	for start := 0; start < len(texts); start += s.opts.BatchSize {
		end := start + s.opts.BatchSize
		if end > len(texts) {
			end = len(texts)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = s.ProcessInput(ctx, texts[i], user)
			}(i)
		}
		wg.Wait()
	}
	return results
}

// GenerateDailyMission asks the coaching model for a mission; on failure it
// picks a stock mission deterministically by day of year.
func (s *Service) GenerateDailyMission(ctx context.Context, user UserContext) string {
	mission, err := runWithTimeout(ctx, s.opts.MissionTimeout, func(ctx context.Context) (string, error) {
		return s.responder.DailyMission(ctx, user)
	})
	if err == nil && strings.TrimSpace(mission) != "" {
		return strings.TrimSpace(mission)
	}
	if err != nil {
		s.logger.Warn("daily mission generation failed, using stock mission", "error", err)
	}
	missions := s.defaults.Missions
	if len(missions) == 0 {
		return "Log at least one activity today."
	}
	return missions[time.Now().YearDay()%len(missions)]
}

// AnalyzeUserPatterns inspects activity history. Below the minimum history
// length no remote call is made at all; on remote failure a local tally
// heuristic stands in.
func (s *Service) AnalyzeUserPatterns(ctx context.Context, activities []parse.Activity) PatternAnalysis {
	if len(activities) < minHistoryForAnalysis {
		return keepLoggingAnalysis()
	}

	analysis, err := runWithTimeout(ctx, s.opts.AnalysisTimeout, func(ctx context.Context) (PatternAnalysis, error) {
		return s.responder.AnalyzePatterns(ctx, activities)
	})
	if err != nil {
		s.logger.Warn("remote pattern analysis failed, using local heuristic", "error", err)
		return localPatternAnalysis(activities)
	}
	return analysis
}

// localPatternAnalysis tallies activity counts by kind and emits
// trend/recommendation strings from simple thresholds.
func localPatternAnalysis(activities []parse.Activity) PatternAnalysis {
	counts := make(map[parse.Kind]int)
	for _, a := range activities {
		counts[a.Kind]++
	}

	analysis := PatternAnalysis{
		Trends:          []string{},
		Recommendations: []string{},
		Achievements:    []string{fmt.Sprintf("Logged %d activities so far.", len(activities))},
	}

	if counts[parse.KindWorkout] > 5 {
		analysis.Trends = append(analysis.Trends, "Consistent workout habit forming.")
	}
	if counts[parse.KindSleep] >= 3 {
		analysis.Trends = append(analysis.Trends, "Sleep is being tracked regularly.")
	}
	if counts[parse.KindMood] >= 3 {
		analysis.Trends = append(analysis.Trends, "Regular mood check-ins.")
	}

	if counts[parse.KindWater] == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "No water entries yet. Try logging hydration, e.g. \"drank 16 oz of water\".")
	}
	if counts[parse.KindWorkout] == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "No workouts logged yet. Even a short walk counts.")
	}
	if counts[parse.KindSleep] == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "Track sleep to see how it affects your energy.")
	}
	if len(analysis.Recommendations) == 0 {
		analysis.Recommendations = append(analysis.Recommendations, "Good coverage across categories. Keep the streak going.")
	}

	if counts[parse.KindWorkout] >= 10 {
		analysis.Achievements = append(analysis.Achievements, "10+ workouts logged.")
	}

	return analysis
}

// ValidateConnections probes both remote clients with short timeouts. It is
// meant for health checks, not the request path.
func (s *Service) ValidateConnections(ctx context.Context) ConnectionStatus {
	status := ConnectionStatus{Errors: []string{}}

	if _, err := runWithTimeout(ctx, s.opts.ProbeTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.extractor.Ping(ctx)
	}); err != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("extraction: %v", err))
	} else {
		status.ExtractionOK = true
	}

	if _, err := runWithTimeout(ctx, s.opts.ProbeTimeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.responder.Ping(ctx)
	}); err != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("coaching: %v", err))
	} else {
		status.CoachingOK = true
	}

	return status
}

// GetSuggestions offers up to three example phrasings for ambiguous input.
// Purely local.
func (s *Service) GetSuggestions(text string) []string {
	return parse.Suggestions(text)
}
