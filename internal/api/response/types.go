package response

import (
	"time"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// Game represents a game in API responses
type Game struct {
	ID             string                 `json:"id"`
	Fingerprint    string                 `json:"fingerprint"`
	TurnNumber     int                    `json:"turn_number"`
	TurnOperations int                    `json:"turn_operations"`
	Finished       bool                   `json:"finished"`
	Turn           model.CurrentTurnState `json:"turn"`
	History        []model.TurnSummary    `json:"history"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) (Game, error) {
	fingerprint, err := g.Fingerprint()
	if err != nil {
		return Game{}, err
	}
	history := g.History
	if history == nil {
		history = []model.TurnSummary{}
	}
	return Game{
		ID:             string(g.ID),
		Fingerprint:    fingerprint,
		TurnNumber:     g.TurnNumber,
		TurnOperations: g.TurnOperations,
		Finished:       g.Finished,
		Turn:           g.Turn,
		History:        history,
		CreatedAt:      g.CreatedAt,
		UpdatedAt:      g.UpdatedAt,
	}, nil
}

// GameList is the response for listing games
type GameList struct {
	Games []string `json:"games"`
}

// Health is the response for the health endpoint
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}
