package engine

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// UpdatePendingPowers either grants a power for the turn or consumes one use
type UpdatePendingPowers struct {
	set   bool
	power model.Power
	count uint8
}

// SetPowers grants power for count uses. Valid only while nothing is pending.
func SetPowers(power model.Power, count uint8) UpdatePendingPowers {
	return UpdatePendingPowers{set: true, power: power, count: count}
}

// UseOnePower consumes one use of the pending power
func UseOnePower() UpdatePendingPowers {
	return UpdatePendingPowers{}
}

// Set returns the granted power and count when the operation is a Set
func (op UpdatePendingPowers) Set() (model.Power, uint8, bool) {
	return op.power, op.count, op.set
}

func (UpdatePendingPowers) Kind() Kind { return KindUpdatePendingPowers }
func (UpdatePendingPowers) operation() {}

func applyUpdatePendingPowers(state *model.CurrentTurnState, op UpdatePendingPowers) error {
	next, err := nextPendingPowers(state.PendingPowers, op)
	if err != nil {
		return err
	}
	state.PendingPowers = next
	return nil
}

func nextPendingPowers(current model.PendingPowers, op UpdatePendingPowers) (model.PendingPowers, error) {
	if power, count, set := op.Set(); set {
		if !power.Valid() {
			return current, fmt.Errorf("%w: invalid power %q", ErrInvalidOperation, power)
		}
		if count == 0 {
			return current, fmt.Errorf("%w: power count must be at least 1", ErrInvalidOperation)
		}
		if current.Phase() != model.PowersNil {
			return current, familyError(FamilyPendingPowers, ErrCanOnlyBeSetOnce)
		}
		return model.PendingPowersOf(power, count), nil
	}

	switch current.Phase() {
	case model.PowersPending:
		if current.Count() > 1 {
			return model.RemainingPowers(current.Power(), current.Count()-1, current.OriginalCount()), nil
		}
		return model.ExhaustedPowers(current.Power(), current.OriginalCount()), nil
	case model.PowersExhausted:
		return current, familyError(FamilyPendingPowers, ErrPowersAlreadyExhausted)
	default:
		return current, familyError(FamilyPendingPowers, ErrPowersNotSet)
	}
}
