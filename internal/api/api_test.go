package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/homeworlds-go/internal/api"
	"github.com/mcoot/homeworlds-go/internal/api/apierr"
	"github.com/mcoot/homeworlds-go/internal/api/response"
	"github.com/mcoot/homeworlds-go/internal/factory"
	"github.com/mcoot/homeworlds-go/internal/model"
	"github.com/mcoot/homeworlds-go/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		HubManager:     app.HubManager,
		StorageType:    app.StorageType,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createGame(t *testing.T, ts *testServer, id string) response.Game {
	t.Helper()
	ts.app.MockRandom.QueueString(id)

	rr := ts.request(http.MethodPost, "/api/v1/games", `{
		"first": {"name": "Sol", "stars": [{"color":"yellow","size":"small"},{"color":"blue","size":"medium"}]},
		"second": {"name": "Vega", "stars": [{"color":"red","size":"large"}]}
	}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[response.Game](t, rr)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","storage":"memory"}`, rr.Body.String())
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)

	game := createGame(t, ts, "GAMECREATE01")
	assert.Equal(t, "GAMECREATE01", game.ID)
	assert.Equal(t, 1, game.TurnNumber)
	assert.Equal(t, model.First, game.Turn.Player)
	assert.Equal(t, model.MakingActions, game.Turn.Status)
	assert.Equal(t, model.PowersNil, game.Turn.PendingPowers.Phase())
	assert.Len(t, game.Fingerprint, 64)
	assert.Empty(t, game.History)
}

func TestCreateGameRejectsBadBodies(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"first":`, http.StatusBadRequest, apierr.CodeInvalidRequest},
		{"same names", `{"first":{"name":"A","stars":[]},"second":{"name":"A","stars":[]}}`,
			http.StatusBadRequest, apierr.CodeInvalidSetup},
		{"bad color", `{"first":{"name":"A","stars":[{"color":"pink","size":"small"}]},"second":{"name":"B"}}`,
			http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/games", tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.code, decode[apierr.ErrorResponse](t, rr).Error.Code)
		})
	}
}

func TestGetGameETag(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEETAG0001")

	rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	etag := rr.Header().Get("ETag")
	assert.Equal(t, `"`+game.Fingerprint+`"`, etag)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestGetMissingGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func TestApplyOperations(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEAPPLY001")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/operations", map[string]any{
		"expected_fingerprint": game.Fingerprint,
		"operations": []map[string]any{
			{"type": "update_pending_powers", "action": "set", "power": "build", "count": 1},
			{"type": "update_fleet", "system": "Sol", "player": "first",
				"starship": map[string]string{"color": "green", "size": "small"}, "delta": "add_one"},
			{"type": "update_pending_powers", "action": "use_one"},
			{"type": "discover_system", "name": "Frontier", "star": map[string]string{"color": "green", "size": "large"}},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	updated := decode[response.Game](t, rr)
	assert.NotEqual(t, game.Fingerprint, updated.Fingerprint)
	assert.Equal(t, `"`+updated.Fingerprint+`"`, rr.Header().Get("ETag"))
	assert.Equal(t, 4, updated.TurnOperations)
	assert.Equal(t, model.PowersExhausted, updated.Turn.PendingPowers.Phase())

	sol := updated.Turn.GameBoard.FindSystem("Sol")
	require.NotNil(t, sol)
	assert.Equal(t, uint8(1), sol.FleetFirst.Count(model.NewStarship(model.Green, model.Small)))
	assert.NotNil(t, updated.Turn.GameBoard.FindSystem("Frontier"))
}

func TestApplyOperationsRollsBackAndReportsIndex(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEROLLBACK")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/operations", `{"operations":[
		{"type":"discover_system","name":"Frontier","star":{"color":"green","size":"large"}},
		{"type":"discover_system","name":"Frontier","star":{"color":"red","size":"small"}}
	]}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	apiErr := decode[apierr.ErrorResponse](t, rr).Error
	assert.Equal(t, apierr.CodeDuplicatedName, apiErr.Code)
	require.NotNil(t, apiErr.Index)
	assert.Equal(t, 1, *apiErr.Index)
	assert.Equal(t, "discover_system", apiErr.Operation)

	rr = ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil)
	stored := decode[response.Game](t, rr)
	assert.Equal(t, game.Fingerprint, stored.Fingerprint)
	assert.Nil(t, stored.Turn.GameBoard.FindSystem("Frontier"))
}

func TestApplyOperationsErrors(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEERRORS01")
	path := "/api/v1/games/" + game.ID + "/operations"

	tests := []struct {
		name    string
		body    string
		headers []string
		status  int
		code    string
	}{
		{"unknown system", `{"operations":[{"type":"destroy_star","system":"Nowhere","target":"single"}]}`,
			nil, http.StatusNotFound, apierr.CodeUnknownStarSystem},
		{"rule violation", `{"operations":[{"type":"update_bank","pyramid":{"color":"red","size":"small"},"delta":"remove_one"}]}`,
			nil, http.StatusConflict, "NO_PYRAMIDS_IN_BANK"},
		{"unsupported type", `{"operations":[{"type":"teleport"}]}`,
			nil, http.StatusBadRequest, apierr.CodeUnsupportedOp},
		{"missing field", `{"operations":[{"type":"update_bank","delta":"add_one"}]}`,
			nil, http.StatusBadRequest, apierr.CodeInvalidOperation},
		{"stale fingerprint in body", `{"expected_fingerprint":"abc","operations":[]}`,
			nil, http.StatusPreconditionFailed, apierr.CodeFingerprintMismatch},
		{"stale If-Match", `{"operations":[]}`,
			[]string{"If-Match", `"abc"`}, http.StatusPreconditionFailed, apierr.CodeFingerprintMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, path, tt.body, tt.headers...)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, tt.code, decode[apierr.ErrorResponse](t, rr).Error.Code)
		})
	}

	// Nothing above changed the game
	rr := ts.request(http.MethodGet, "/api/v1/games/"+game.ID, nil, "If-None-Match", `"`+game.Fingerprint+`"`)
	assert.Equal(t, http.StatusNotModified, rr.Code)
}

func TestApplyWithMatchingIfMatch(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEIFMATCH1")

	rr := ts.request(http.MethodPost, "/api/v1/games/"+game.ID+"/operations",
		`{"operations":[{"type":"update_bank","pyramid":{"color":"red","size":"small"},"delta":"add_one"}]}`,
		"If-Match", `W/"`+game.Fingerprint+`"`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, uint8(1), decode[response.Game](t, rr).Turn.GameBoard.Bank.Count(model.NewPyramid(model.Red, model.Small)))
}

func TestEndTurnAndResign(t *testing.T) {
	ts := newTestServer(t)
	game := createGame(t, ts, "GAMEENDTURN1")
	base := "/api/v1/games/" + game.ID

	rr := ts.request(http.MethodPost, base+"/turn/end", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	game = decode[response.Game](t, rr)
	assert.Equal(t, 2, game.TurnNumber)
	assert.Equal(t, model.Second, game.Turn.Player)
	require.Len(t, game.History, 1)
	assert.Equal(t, model.First, game.History[0].Player)

	rr = ts.request(http.MethodPost, base+"/operations",
		`{"operations":[{"type":"set_current_turn_status","status":"resigning"}]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.request(http.MethodPost, base+"/turn/end", map[string]string{"expected_fingerprint": decode[response.Game](t, rr).Fingerprint})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, decode[response.Game](t, rr).Finished)

	rr = ts.request(http.MethodPost, base+"/turn/end", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeGameFinished, decode[apierr.ErrorResponse](t, rr).Error.Code)
}

func TestListAndDeleteGames(t *testing.T) {
	ts := newTestServer(t)
	createGame(t, ts, "GAMELISTBBBB")
	createGame(t, ts, "GAMELISTAAAA")

	rr := ts.request(http.MethodGet, "/api/v1/games", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"GAMELISTAAAA", "GAMELISTBBBB"}, decode[response.GameList](t, rr).Games)

	rr = ts.request(http.MethodDelete, "/api/v1/games/GAMELISTAAAA", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/games/GAMELISTAAAA", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/games", nil)
	assert.Equal(t, []string{"GAMELISTBBBB"}, decode[response.GameList](t, rr).Games)
}

func TestEventsForMissingGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/NOPE/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
