package engine

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// SetCurrentTurnStatus moves the turn out of MakingActions
type SetCurrentTurnStatus struct {
	Status model.CurrentTurnStatus
}

func (SetCurrentTurnStatus) Kind() Kind { return KindSetCurrentTurnStatus }
func (SetCurrentTurnStatus) operation() {}

// MakingActions is the only status that can be left; Passing and
// Resigning are terminal for the turn
func applySetCurrentTurnStatus(state *model.CurrentTurnState, op SetCurrentTurnStatus) error {
	if !op.Status.Valid() {
		return fmt.Errorf("%w: invalid turn status %q", ErrInvalidOperation, op.Status)
	}
	if state.Status == op.Status {
		return familyError(FamilyTurnStatus, ErrNoChange)
	}
	if state.Status != model.MakingActions {
		return familyError(FamilyTurnStatus, ErrCanOnlyChangeFromMakingActions)
	}
	state.Status = op.Status
	return nil
}
