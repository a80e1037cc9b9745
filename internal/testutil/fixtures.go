package testutil

import (
	"time"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// DefaultSetup returns a setup with a binary homeworld for the first
// player and a single-star homeworld for the second
func DefaultSetup() model.Setup {
	return model.Setup{
		First: model.HomeworldSetup{
			Name:  "Homeworld1",
			Stars: []model.Star{model.NewStar(model.Yellow, model.Small), model.NewStar(model.Blue, model.Medium)},
		},
		Second: model.HomeworldSetup{
			Name:  "Homeworld2",
			Stars: []model.Star{model.NewStar(model.Red, model.Large)},
		},
	}
}

// NewGame builds a game with a populated board for storage tests
func NewGame(id model.GameID) *model.Game {
	board, err := model.NewGameBoardFromSetup(DefaultSetup())
	if err != nil {
		panic(err)
	}
	board.Bank.Pyramids[model.NewPyramid(model.Green, model.Small)] = 3

	outpost := model.NewStarSystem("Outpost", model.SingleStar(model.NewStar(model.Green, model.Large)))
	outpost.FleetSecond.Starships[model.NewStarship(model.Red, model.Medium)] = 2
	board.DiscoveredSystems = append(board.DiscoveredSystems, outpost)

	turn := model.NewTurnState(model.First, board)
	turn.PendingPowers = model.PendingPowersOf(model.PowerBuild, 2)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Game{
		ID:         id,
		Turn:       turn,
		TurnNumber: 1,
		History:    []model.TurnSummary{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
