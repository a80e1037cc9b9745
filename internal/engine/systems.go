package engine

import (
	"fmt"
	"slices"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// DiscoverSystem adds a new single-star system to the board
type DiscoverSystem struct {
	Name       string
	CenterStar model.Star
}

func (DiscoverSystem) Kind() Kind { return KindDiscoverSystem }
func (DiscoverSystem) operation() {}

// ForgetSystem removes a discovered system that no ship occupies
type ForgetSystem struct {
	Name string
}

func (ForgetSystem) Kind() Kind { return KindForgetSystem }
func (ForgetSystem) operation() {}

// Names are unique across the whole board, homeworlds included
func applyDiscoverSystem(state *model.CurrentTurnState, op DiscoverSystem) error {
	if op.Name == "" {
		return fmt.Errorf("%w: star system name is required", ErrInvalidOperation)
	}
	if !op.CenterStar.Valid() {
		return fmt.Errorf("%w: invalid center star %s", ErrInvalidOperation, op.CenterStar.Pyramid)
	}

	board := &state.GameBoard
	if board.FindSystem(op.Name) != nil {
		return &DuplicatedStarSystemNameError{Name: op.Name}
	}

	board.DiscoveredSystems = append(board.DiscoveredSystems,
		model.NewStarSystem(op.Name, model.SingleStar(op.CenterStar)))
	return nil
}

func applyForgetSystem(state *model.CurrentTurnState, op ForgetSystem) error {
	board := &state.GameBoard
	system := board.FindSystem(op.Name)
	if system == nil {
		return ErrUnknownStarSystem
	}
	if system.IsHomeworld() {
		return familyError(FamilyForgetSystem, ErrCannotForgetHomeworld)
	}

	// Untagged systems outside the discovered list are the fixed homeworld slots
	index := board.DiscoveredIndex(op.Name)
	if index < 0 {
		return familyError(FamilyForgetSystem, ErrCannotForgetHomeworld)
	}
	if !system.FleetsEmpty() {
		return familyError(FamilyForgetSystem, ErrFleetsNotEmpty)
	}

	board.DiscoveredSystems = slices.Delete(board.DiscoveredSystems, index, index+1)
	return nil
}
