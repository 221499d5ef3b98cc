package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/history"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
)

// CoachService defines the pipeline operations needed by MCP.
type CoachService interface {
	ProcessInput(ctx context.Context, text string, user coach.UserContext) coach.Result
	ProcessBatch(ctx context.Context, texts []string, user coach.UserContext) []coach.Result
	GenerateDailyMission(ctx context.Context, user coach.UserContext) string
	AnalyzeUserPatterns(ctx context.Context, activities []parse.Activity) coach.PatternAnalysis
	ValidateConnections(ctx context.Context) coach.ConnectionStatus
	GetSuggestions(text string) []string
}

// HistoryService defines the persistence operations needed by MCP.
type HistoryService interface {
	LogActivity(ctx context.Context, activity parse.Activity) (*history.Entry, error)
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	RecentActivities(ctx context.Context, limit int) ([]parse.Activity, error)
	CountsByKind(ctx context.Context) (map[parse.Kind]int, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Coach   CoachService
	History HistoryService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "lifelog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
