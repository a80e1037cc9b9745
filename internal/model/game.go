package model

import (
	"fmt"
	"slices"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// Game is the stored record around a game's current turn
type Game struct {
	ID             GameID           `json:"id"`
	Turn           CurrentTurnState `json:"turn"`
	TurnNumber     int              `json:"turn_number"`     // 1-indexed
	TurnOperations int              `json:"turn_operations"` // Operations applied during the current turn
	History        []TurnSummary    `json:"history"`
	Finished       bool             `json:"finished"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// TurnSummary records how a completed turn ended
type TurnSummary struct {
	Number     int               `json:"number"`
	Player     Player            `json:"player"`
	Status     CurrentTurnStatus `json:"status"`
	Operations int               `json:"operations"` // Operations applied during the turn
	EndedAt    time.Time         `json:"ended_at"`
}

// HomeworldSetup describes one player's homeworld at game creation
type HomeworldSetup struct {
	Name  string `json:"name"`
	Stars []Star `json:"stars"`
}

// Setup describes the initial board
type Setup struct {
	First  HomeworldSetup `json:"first"`
	Second HomeworldSetup `json:"second"`
}

// NewGameBoardFromSetup builds the initial board: two tagged homeworlds,
// no discovered systems and an empty bank
func NewGameBoardFromSetup(setup Setup) (GameBoard, error) {
	if setup.First.Name == "" || setup.Second.Name == "" {
		return GameBoard{}, fmt.Errorf("%w: homeworld names are required", ErrInvalidSetup)
	}
	if setup.First.Name == setup.Second.Name {
		return GameBoard{}, fmt.Errorf("%w: homeworld names must differ", ErrInvalidSetup)
	}

	homeworlds := make([]StarSystem, 0, 2)
	for _, hw := range []struct {
		setup HomeworldSetup
		owner Player
	}{
		{setup.First, First},
		{setup.Second, Second},
	} {
		for _, star := range hw.setup.Stars {
			if !star.Valid() {
				return GameBoard{}, fmt.Errorf("%w: invalid star %s in %q", ErrInvalidSetup, star.Pyramid, hw.setup.Name)
			}
		}
		center, err := CenterFromStars(hw.setup.Stars)
		if err != nil {
			return GameBoard{}, err
		}
		homeworlds = append(homeworlds, NewHomeworld(hw.setup.Name, center, hw.owner))
	}

	return NewGameBoard(homeworlds[0], homeworlds[1]), nil
}

// Fingerprint returns the fingerprint of the game's current turn
func (g *Game) Fingerprint() (string, error) {
	return Fingerprint(&g.Turn)
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.Turn = *g.Turn.Clone()
	clone.History = slices.Clone(g.History)
	return &clone
}
