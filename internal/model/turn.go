package model

import "fmt"

// PowersPhase is the lifecycle phase of a turn's pending power
type PowersPhase string

const (
	PowersNil       PowersPhase = "nil"
	PowersPending   PowersPhase = "pending"
	PowersExhausted PowersPhase = "exhausted"
)

// PendingPowers tracks the single power that may be granted during a turn.
// The zero value is the Nil phase.
type PendingPowers struct {
	phase         PowersPhase
	power         Power
	count         uint8
	originalCount uint8
}

// NoPendingPowers returns the Nil phase
func NoPendingPowers() PendingPowers {
	return PendingPowers{}
}

// PendingPowersOf returns a Pending phase with count uses left out of count
func PendingPowersOf(power Power, count uint8) PendingPowers {
	return PendingPowers{phase: PowersPending, power: power, count: count, originalCount: count}
}

// RemainingPowers returns a Pending phase with count of originalCount uses left
func RemainingPowers(power Power, count, originalCount uint8) PendingPowers {
	return PendingPowers{phase: PowersPending, power: power, count: count, originalCount: originalCount}
}

// ExhaustedPowers returns an Exhausted phase for a fully consumed grant
func ExhaustedPowers(power Power, originalCount uint8) PendingPowers {
	return PendingPowers{phase: PowersExhausted, power: power, originalCount: originalCount}
}

// Phase returns the lifecycle phase
func (p PendingPowers) Phase() PowersPhase {
	if p.phase == "" {
		return PowersNil
	}
	return p.phase
}

// Power returns the granted power; empty in the Nil phase
func (p PendingPowers) Power() Power {
	return p.power
}

// Count returns the remaining uses; zero unless Pending
func (p PendingPowers) Count() uint8 {
	return p.count
}

// OriginalCount returns the size of the initial grant; zero in the Nil phase
func (p PendingPowers) OriginalCount() uint8 {
	return p.originalCount
}

// String renders the phase for logs and CLI output
func (p PendingPowers) String() string {
	switch p.Phase() {
	case PowersPending:
		return fmt.Sprintf("pending(%s, %d/%d)", p.power, p.count, p.originalCount)
	case PowersExhausted:
		return fmt.Sprintf("exhausted(%s, %d)", p.power, p.originalCount)
	}
	return "nil"
}

// CurrentTurnStatus is the phase of the acting player's turn
type CurrentTurnStatus string

const (
	MakingActions CurrentTurnStatus = "making_actions"
	Passing       CurrentTurnStatus = "passing"
	Resigning     CurrentTurnStatus = "resigning"
)

// Valid reports whether s is a known status
func (s CurrentTurnStatus) Valid() bool {
	switch s {
	case MakingActions, Passing, Resigning:
		return true
	}
	return false
}

// UnmarshalText rejects unknown statuses
func (s *CurrentTurnStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseTurnStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseTurnStatus converts a name into a CurrentTurnStatus
func ParseTurnStatus(s string) (CurrentTurnStatus, error) {
	status := CurrentTurnStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTurnStatus, s)
	}
	return status, nil
}

// CurrentTurnState is everything a single turn may read or change
type CurrentTurnState struct {
	Player        Player            `json:"player"`
	GameBoard     GameBoard         `json:"game_board"`
	PendingPowers PendingPowers     `json:"pending_powers"`
	Status        CurrentTurnStatus `json:"status"`
}

// NewTurnState starts a fresh turn for player on the given board
func NewTurnState(player Player, board GameBoard) CurrentTurnState {
	return CurrentTurnState{
		Player:        player,
		GameBoard:     board,
		PendingPowers: NoPendingPowers(),
		Status:        MakingActions,
	}
}

// Clone returns a deep copy that shares no ledgers or slices with s
func (s *CurrentTurnState) Clone() *CurrentTurnState {
	clone := *s
	clone.GameBoard = s.GameBoard.Clone()
	return &clone
}

// Clone returns a deep copy of the board
func (b GameBoard) Clone() GameBoard {
	clone := GameBoard{
		Bank:              Bank{Pyramids: cloneCounts(b.Bank.Pyramids)},
		HomeworldFirst:    b.HomeworldFirst.Clone(),
		HomeworldSecond:   b.HomeworldSecond.Clone(),
		DiscoveredSystems: make([]StarSystem, len(b.DiscoveredSystems)),
	}
	for i := range b.DiscoveredSystems {
		clone.DiscoveredSystems[i] = b.DiscoveredSystems[i].Clone()
	}
	return clone
}

// Clone returns a deep copy of the system
func (s StarSystem) Clone() StarSystem {
	clone := s
	clone.FleetFirst = Fleet{Starships: cloneCounts(s.FleetFirst.Starships)}
	clone.FleetSecond = Fleet{Starships: cloneCounts(s.FleetSecond.Starships)}
	if s.HomeworldFor != nil {
		owner := *s.HomeworldFor
		clone.HomeworldFor = &owner
	}
	return clone
}

func cloneCounts[K comparable](counts map[K]uint8) map[K]uint8 {
	clone := make(map[K]uint8, len(counts))
	for k, v := range counts {
		clone[k] = v
	}
	return clone
}
