package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/homeworlds-go/internal/api"
	"github.com/mcoot/homeworlds-go/internal/api/response"
	"github.com/mcoot/homeworlds-go/internal/cli"
	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/factory"
	"github.com/mcoot/homeworlds-go/internal/model"
	"github.com/mcoot/homeworlds-go/internal/testutil"
)

// testServer runs the real HTTP server on a free local port
type testServer struct {
	app *factory.TestApp
	url string
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	logger := testutil.NopLogger()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		StorageType:    app.StorageType,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = "127.0.0.1"
	serverConfig.Port = 0
	server := api.NewServer(router, serverConfig, logger)
	require.NoError(t, server.Listen())

	go func() { _ = server.Start() }()

	t.Cleanup(func() {
		app.HubManager.Close()
		_ = server.Shutdown(context.Background())
		_ = app.Close()
	})

	return &testServer{app: app, url: "http://" + server.Addr()}
}

// run executes the CLI in-process and returns what it printed
func (s *testServer) run(args ...string) (string, error) {
	return s.runContext(context.Background(), &bytes.Buffer{}, args...)
}

type outputBuffer interface {
	io.Writer
	String() string
}

func (s *testServer) runContext(ctx context.Context, w outputBuffer, args ...string) (string, error) {
	cmd := cli.NewRootCmd()
	cmd.SetOut(w)
	cmd.SetErr(w)
	cmd.SetArgs(append([]string{"--server", s.url, "--output", "json"}, args...))
	err := cmd.ExecuteContext(ctx)
	return w.String(), err
}

func (s *testServer) game(t *testing.T, args ...string) response.Game {
	t.Helper()
	output, err := s.run(args...)
	require.NoError(t, err, output)

	var game response.Game
	require.NoError(t, json.Unmarshal([]byte(output), &game), output)
	return game
}

func TestCLI_Health(t *testing.T) {
	ts := startTestServer(t)

	output, err := ts.run("health")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, output)
}

func TestCLI_GameFlow(t *testing.T) {
	ts := startTestServer(t)
	ts.app.MockRandom.QueueString("GAMEFLOW0001")

	game := ts.game(t, "game", "create",
		"--first-name", "Sol", "--first-stars", "yellow/small,blue/medium",
		"--second-name", "Vega", "--second-stars", "red/large")
	assert.Equal(t, "GAMEFLOW0001", game.ID)
	assert.Equal(t, model.First, game.Turn.Player)

	game = ts.game(t, "op", "powers", game.ID, "set", "build", "1")
	assert.Equal(t, model.PowersPending, game.Turn.PendingPowers.Phase())

	game = ts.game(t, "op", "fleet", game.ID, "Sol", "first", "green/small", "add")
	game = ts.game(t, "op", "powers", game.ID, "use-one")
	game = ts.game(t, "op", "discover", game.ID, "Frontier", "green/large", "--fingerprint", game.Fingerprint)
	require.NotNil(t, game.Turn.GameBoard.FindSystem("Frontier"))
	assert.Equal(t, 4, game.TurnOperations)

	// A stale fingerprint is rejected
	_, err := ts.run("op", "bank", game.ID, "red/small", "add", "--fingerprint", "stale")
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "FINGERPRINT_MISMATCH", apiErr.Code)

	// A rule violation reports the failing operation
	_, err = ts.run("op", "forget", game.ID, "Sol")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "CANNOT_FORGET_HOMEWORLD", apiErr.Code)
	require.NotNil(t, apiErr.Index)
	assert.Equal(t, 0, *apiErr.Index)

	game = ts.game(t, "op", "status", game.ID, "passing")
	game = ts.game(t, "game", "end-turn", game.ID)
	assert.Equal(t, 2, game.TurnNumber)
	assert.Equal(t, model.Second, game.Turn.Player)

	output, err := ts.run("game", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"games":["GAMEFLOW0001"]}`, output)

	_, err = ts.run("game", "delete", game.ID)
	require.NoError(t, err)

	_, err = ts.run("game", "get", game.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "GAME_NOT_FOUND", apiErr.Code)
}

func TestCLI_ApplyBatchRollsBack(t *testing.T) {
	ts := startTestServer(t)
	ts.app.MockRandom.QueueString("GAMEBATCH001")

	game := ts.game(t, "game", "create",
		"--first-name", "Sol", "--first-stars", "yellow/small",
		"--second-name", "Vega", "--second-stars", "red/large")

	batch := `[
		{"type":"update_bank","pyramid":{"color":"green","size":"small"},"delta":"add_one"},
		{"type":"update_bank","pyramid":{"color":"blue","size":"large"},"delta":"remove_one"}
	]`
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(batch), 0o600))

	_, err := ts.run("op", "apply", game.ID, "-f", path)
	var apiErr *cli.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NO_PYRAMIDS_IN_BANK", apiErr.Code)
	require.NotNil(t, apiErr.Index)
	assert.Equal(t, 1, *apiErr.Index)
	assert.Equal(t, string(engine.KindUpdateBank), apiErr.Operation)

	after := ts.game(t, "game", "get", game.ID)
	assert.Equal(t, game.Fingerprint, after.Fingerprint)
	assert.Empty(t, after.Turn.GameBoard.Bank.Pyramids)
}

// syncBuffer lets the test read output while the events command writes it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCLI_Events(t *testing.T) {
	ts := startTestServer(t)
	ts.app.MockRandom.QueueString("GAMEEVENTS01")

	game := ts.game(t, "game", "create",
		"--first-name", "Sol", "--first-stars", "yellow/small",
		"--second-name", "Vega", "--second-stars", "red/large")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		_, err := ts.runContext(ctx, out, "events", game.ID, "--json")
		done <- err
	}()

	require.Eventually(t, func() bool {
		hub := ts.app.HubManager.GetHub(model.GameID(game.ID))
		return hub != nil && hub.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err := ts.app.GameController.Apply(context.Background(), model.GameID(game.ID), []engine.Operation{
		engine.SetCurrentTurnStatus{Status: model.Passing},
	}, "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"event":"operations_applied"`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("events command did not stop")
	}
	assert.Contains(t, out.String(), `"event":"connected"`)
}
