package engine

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// UpdateFleet adds or removes one starship in a player's fleet
type UpdateFleet struct {
	SystemName string
	Player     model.Player
	Starship   model.Starship
	Delta      Delta
}

func (UpdateFleet) Kind() Kind { return KindUpdateFleet }
func (UpdateFleet) operation() {}

// UpdateBank adds or removes one pyramid in the bank
type UpdateBank struct {
	Pyramid model.Pyramid
	Delta   Delta
}

func (UpdateBank) Kind() Kind { return KindUpdateBank }
func (UpdateBank) operation() {}

func applyUpdateFleet(state *model.CurrentTurnState, op UpdateFleet) error {
	if !op.Player.Valid() {
		return fmt.Errorf("%w: invalid player %q", ErrInvalidOperation, op.Player)
	}
	if !op.Starship.Valid() {
		return fmt.Errorf("%w: invalid starship %s", ErrInvalidOperation, op.Starship.Pyramid)
	}
	if !op.Delta.Valid() {
		return fmt.Errorf("%w: unknown delta %q", ErrInvalidOperation, op.Delta)
	}

	system := state.GameBoard.FindSystem(op.SystemName)
	if system == nil {
		return ErrUnknownStarSystem
	}

	fleet := system.Fleet(op.Player)
	if err := updateCount(fleet.Counts(), op.Starship, op.Delta, ErrFleetCountOverflow, ErrNoSuchStarships); err != nil {
		return familyError(FamilyFleet, err)
	}
	return nil
}

func applyUpdateBank(state *model.CurrentTurnState, op UpdateBank) error {
	if !op.Pyramid.Valid() {
		return fmt.Errorf("%w: invalid pyramid %s", ErrInvalidOperation, op.Pyramid)
	}
	if !op.Delta.Valid() {
		return fmt.Errorf("%w: unknown delta %q", ErrInvalidOperation, op.Delta)
	}

	bank := &state.GameBoard.Bank
	if err := updateCount(bank.Counts(), op.Pyramid, op.Delta, ErrBankCountOverflow, ErrNoPyramidsInBank); err != nil {
		return familyError(FamilyBank, err)
	}
	return nil
}
