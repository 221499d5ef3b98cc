// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/history"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
	"github.com/stretchr/testify/mock"
)

// Extractor is a mock for coach.Extractor.
type Extractor struct {
	mock.Mock
}

func (m *Extractor) Extract(ctx context.Context, text string) (parse.Activity, error) {
	args := m.Called(ctx, text)
	if activity, ok := args.Get(0).(parse.Activity); ok {
		return activity, args.Error(1)
	}
	return parse.Activity{}, args.Error(1)
}

func (m *Extractor) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Responder is a mock for coach.Responder.
type Responder struct {
	mock.Mock
}

func (m *Responder) Respond(ctx context.Context, text string, activity parse.Activity, user coach.UserContext) (coach.Response, error) {
	args := m.Called(ctx, text, activity, user)
	if resp, ok := args.Get(0).(coach.Response); ok {
		return resp, args.Error(1)
	}
	return coach.Response{}, args.Error(1)
}

func (m *Responder) DailyMission(ctx context.Context, user coach.UserContext) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *Responder) AnalyzePatterns(ctx context.Context, activities []parse.Activity) (coach.PatternAnalysis, error) {
	args := m.Called(ctx, activities)
	if analysis, ok := args.Get(0).(coach.PatternAnalysis); ok {
		return analysis, args.Error(1)
	}
	return coach.PatternAnalysis{}, args.Error(1)
}

func (m *Responder) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// HistoryRepository is a mock for history.Repository.
type HistoryRepository struct {
	mock.Mock
}

func (m *HistoryRepository) Save(ctx context.Context, entry *history.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *HistoryRepository) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	args := m.Called(ctx, limit)
	if entries, ok := args.Get(0).([]history.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *HistoryRepository) CountsByKind(ctx context.Context) (map[parse.Kind]int, error) {
	args := m.Called(ctx)
	if counts, ok := args.Get(0).(map[parse.Kind]int); ok {
		return counts, args.Error(1)
	}
	return nil, args.Error(1)
}
