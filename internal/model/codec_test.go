package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTurnState() CurrentTurnState {
	board := NewGameBoard(
		NewHomeworld("Home1", BinaryStar(NewStar(Red, Small), NewStar(Blue, Large)), First),
		NewHomeworld("Home2", SingleStar(NewStar(Green, Medium)), Second),
	)
	board.Bank.Pyramids[NewPyramid(Yellow, Small)] = 3
	board.Bank.Pyramids[NewPyramid(Green, Large)] = 1

	system := NewStarSystem("Outpost", SingleStar(NewStar(Yellow, Large)))
	system.FleetFirst.Starships[NewStarship(Red, Medium)] = 2
	board.DiscoveredSystems = append(board.DiscoveredSystems, system)

	state := NewTurnState(Second, board)
	state.PendingPowers = RemainingPowers(PowerMove, 1, 2)
	return state
}

func TestTurnStateJSONRoundTrip(t *testing.T) {
	state := testTurnState()

	data, err := json.Marshal(&state)
	require.NoError(t, err)

	var decoded CurrentTurnState
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, state, decoded)
}

func TestLedgerEncodesSortedEntries(t *testing.T) {
	bank := NewBank()
	bank.Pyramids[NewPyramid(Blue, Small)] = 1
	bank.Pyramids[NewPyramid(Green, Large)] = 2
	bank.Pyramids[NewPyramid(Green, Small)] = 4

	data, err := json.Marshal(bank)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"color":"green","size":"small","count":4},
		{"color":"green","size":"large","count":2},
		{"color":"blue","size":"small","count":1}
	]`, string(data))
}

func TestLedgerRejectsZeroAndDuplicateEntries(t *testing.T) {
	var fleet Fleet
	err := json.Unmarshal([]byte(`[{"color":"red","size":"small","count":0}]`), &fleet)
	assert.ErrorIs(t, err, ErrInvalidLedger)

	err = json.Unmarshal([]byte(`[
		{"color":"red","size":"small","count":1},
		{"color":"red","size":"small","count":2}
	]`), &fleet)
	assert.ErrorIs(t, err, ErrInvalidLedger)

	var bank Bank
	err = json.Unmarshal([]byte(`[{"color":"purple","size":"small","count":1}]`), &bank)
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestCenterJSON(t *testing.T) {
	tests := []struct {
		name   string
		center StarSystemCenter
		json   string
	}{
		{"empty", EmptyCenter(), `{"kind":"empty"}`},
		{"single", SingleStar(NewStar(Red, Small)), `{"kind":"single","star":{"color":"red","size":"small"}}`},
		{"binary", BinaryStar(NewStar(Red, Small), NewStar(Blue, Large)),
			`{"kind":"binary","alpha":{"color":"red","size":"small"},"beta":{"color":"blue","size":"large"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.center)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var decoded StarSystemCenter
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.center, decoded)
		})
	}
}

func TestCenterJSONRejectsMissingStars(t *testing.T) {
	var center StarSystemCenter
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"single"}`), &center), ErrInvalidCenter)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"binary","alpha":{"color":"red","size":"small"}}`), &center), ErrInvalidCenter)
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"trinary"}`), &center), ErrInvalidCenter)
}

func TestPendingPowersJSON(t *testing.T) {
	for _, powers := range []PendingPowers{
		NoPendingPowers(),
		PendingPowersOf(PowerBuild, 3),
		RemainingPowers(PowerTrade, 1, 2),
		ExhaustedPowers(PowerCapture, 1),
	} {
		data, err := json.Marshal(powers)
		require.NoError(t, err)

		var decoded PendingPowers
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, powers, decoded, "round trip of %s", powers)
	}
}

func TestPendingPowersJSONRejectsBadCounts(t *testing.T) {
	var powers PendingPowers
	err := json.Unmarshal([]byte(`{"phase":"pending","power":"build","count":3,"original_count":2}`), &powers)
	assert.ErrorIs(t, err, ErrInvalidPendingPowers)

	err = json.Unmarshal([]byte(`{"phase":"pending","power":"build","count":0,"original_count":2}`), &powers)
	assert.ErrorIs(t, err, ErrInvalidPendingPowers)

	err = json.Unmarshal([]byte(`{"phase":"pending","power":"fly","count":1,"original_count":1}`), &powers)
	assert.ErrorIs(t, err, ErrInvalidPower)
}

func TestCloneSharesNothing(t *testing.T) {
	state := testTurnState()
	clone := state.Clone()
	require.Equal(t, &state, clone)

	clone.GameBoard.Bank.Pyramids[NewPyramid(Red, Large)] = 1
	clone.GameBoard.DiscoveredSystems[0].FleetFirst.Starships[NewStarship(Red, Medium)] = 9
	clone.GameBoard.HomeworldFirst.FleetSecond.Starships[NewStarship(Blue, Small)] = 1
	*clone.GameBoard.HomeworldSecond.HomeworldFor = First
	clone.GameBoard.DiscoveredSystems = append(clone.GameBoard.DiscoveredSystems, NewStarSystem("Extra", EmptyCenter()))

	assert.Equal(t, testTurnState(), state)
}

func TestFingerprintIgnoresMapOrder(t *testing.T) {
	a := testTurnState()
	b := testTurnState()
	// Rebuild the bank with a different insertion order
	b.GameBoard.Bank = NewBank()
	b.GameBoard.Bank.Pyramids[NewPyramid(Green, Large)] = 1
	b.GameBoard.Bank.Pyramids[NewPyramid(Yellow, Small)] = 3

	fa, err := Fingerprint(&a)
	require.NoError(t, err)
	fb, err := Fingerprint(&b)
	require.NoError(t, err)
	assert.Equal(t, fa, fb)
	assert.Len(t, fa, 64)

	b.Status = Passing
	fc, err := Fingerprint(&b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fc)
}
