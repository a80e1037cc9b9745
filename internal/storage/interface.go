package storage

import (
	"context"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// Storage defines the interface for game persistence.
// Implementations return model.ErrGameNotFound for missing games.
type Storage interface {
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// ListGames returns the IDs of every stored game in ascending order
	ListGames(ctx context.Context) ([]model.GameID, error)
}
