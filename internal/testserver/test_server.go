// Package testserver builds a fully wired MCP server over an in-memory
// database and stub model clients, for offline functional tests.
package testserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rowanvale/lifelog-mcp/internal/domain/coach"
	"github.com/rowanvale/lifelog-mcp/internal/domain/history"
	"github.com/rowanvale/lifelog-mcp/internal/domain/parse"
	"github.com/rowanvale/lifelog-mcp/internal/mcp"
	"github.com/rowanvale/lifelog-mcp/internal/sqlite"
	"github.com/stretchr/testify/require"
)

var errOffline = errors.New("model endpoint unavailable in tests")

// offlineExtractor stands in for the remote extraction client. It behaves
// like the real one with the network down: local rules, then unknown.
type offlineExtractor struct{}

func (offlineExtractor) Extract(ctx context.Context, text string) (parse.Activity, error) {
	if activity, ok := parse.Match(text); ok {
		return activity, nil
	}
	return parse.Unknown(text, errOffline.Error()), nil
}

func (offlineExtractor) Ping(ctx context.Context) error { return errOffline }

// offlineResponder fails every coaching call so the orchestrator's canned
// fallbacks are what reach the client.
type offlineResponder struct{}

func (offlineResponder) Respond(ctx context.Context, text string, activity parse.Activity, user coach.UserContext) (coach.Response, error) {
	return coach.Response{}, errOffline
}

func (offlineResponder) DailyMission(ctx context.Context, user coach.UserContext) (string, error) {
	return "", errOffline
}

func (offlineResponder) AnalyzePatterns(ctx context.Context, activities []parse.Activity) (coach.PatternAnalysis, error) {
	return coach.PatternAnalysis{}, errOffline
}

func (offlineResponder) Ping(ctx context.Context) error { return errOffline }

// TestServer is a connected MCP client session over an in-memory server.
type TestServer struct {
	Session *sdkmcp.ClientSession
	DB      *sqlite.DB
}

// New wires the full stack and connects a client over in-memory transports.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	coachSvc := coach.NewService(offlineExtractor{}, offlineResponder{}, coach.DefaultResponses(), coach.Options{}, nil)
	historySvc := history.NewService(sqlite.NewHistoryRepository(db), nil)

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Coach:   coachSvc,
			History: historySvc,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Wait()
		_ = db.Close()
		cancel()
	})

	return &TestServer{Session: clientSession, DB: db}
}
