// Package engine applies single-turn operations to a CurrentTurnState.
//
// Every operation either commits its whole effect or returns an error and
// leaves the state exactly as it was. The engine does not judge whether an
// operation is legal under the game rules; callers sequence operations and
// the engine only protects the board's invariants.
package engine

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// Kind names an operation type
type Kind string

const (
	KindDiscoverSystem       Kind = "discover_system"
	KindForgetSystem         Kind = "forget_system"
	KindUpdateFleet          Kind = "update_fleet"
	KindUpdateBank           Kind = "update_bank"
	KindDestroyStar          Kind = "destroy_star"
	KindUpdatePendingPowers  Kind = "update_pending_powers"
	KindSetCurrentTurnStatus Kind = "set_current_turn_status"
)

// Kinds lists every operation kind
var Kinds = []Kind{
	KindDiscoverSystem,
	KindForgetSystem,
	KindUpdateFleet,
	KindUpdateBank,
	KindDestroyStar,
	KindUpdatePendingPowers,
	KindSetCurrentTurnStatus,
}

// Operation is one of the operation types declared in this package.
// The set is closed: only types in this package implement it.
type Operation interface {
	Kind() Kind
	operation()
}

// Apply applies a single operation to state
func Apply(state *model.CurrentTurnState, op Operation) error {
	switch op := op.(type) {
	case DiscoverSystem:
		return applyDiscoverSystem(state, op)
	case ForgetSystem:
		return applyForgetSystem(state, op)
	case UpdateFleet:
		return applyUpdateFleet(state, op)
	case UpdateBank:
		return applyUpdateBank(state, op)
	case DestroyStar:
		return applyDestroyStar(state, op)
	case UpdatePendingPowers:
		return applyUpdatePendingPowers(state, op)
	case SetCurrentTurnStatus:
		return applySetCurrentTurnStatus(state, op)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedOperation, op)
	}
}

// ApplyAll applies ops in order as one unit. If any operation fails the
// state is left as it was and a *BatchError names the failing operation.
func ApplyAll(state *model.CurrentTurnState, ops ...Operation) error {
	working := state.Clone()
	for i, op := range ops {
		if err := Apply(working, op); err != nil {
			return &BatchError{Index: i, Kind: kindOf(op), Err: err}
		}
	}
	*state = *working
	return nil
}

// kindOf names op without calling its methods, so typed nil pointers and
// other foreign values report an empty kind.
func kindOf(op Operation) Kind {
	switch op.(type) {
	case DiscoverSystem:
		return KindDiscoverSystem
	case ForgetSystem:
		return KindForgetSystem
	case UpdateFleet:
		return KindUpdateFleet
	case UpdateBank:
		return KindUpdateBank
	case DestroyStar:
		return KindDestroyStar
	case UpdatePendingPowers:
		return KindUpdatePendingPowers
	case SetCurrentTurnStatus:
		return KindSetCurrentTurnStatus
	default:
		return ""
	}
}
