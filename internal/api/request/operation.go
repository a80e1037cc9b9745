package request

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/model"
)

// Star targets accepted by destroy_star
const (
	TargetSingle = "single"
	TargetAlpha  = "alpha"
	TargetBeta   = "beta"
)

// Pending power actions accepted by update_pending_powers
const (
	ActionSet    = "set"
	ActionUseOne = "use_one"
)

// OperationRequest is the wire form of one engine operation. Type selects
// the operation and decides which of the other fields are read.
type OperationRequest struct {
	Type engine.Kind `json:"type"`

	// discover_system, forget_system
	Name string      `json:"name,omitempty"`
	Star *model.Star `json:"star,omitempty"`

	// update_fleet, destroy_star
	System string `json:"system,omitempty"`

	// update_fleet
	Player   model.Player    `json:"player,omitempty"`
	Starship *model.Starship `json:"starship,omitempty"`

	// update_bank
	Pyramid *model.Pyramid `json:"pyramid,omitempty"`

	// update_fleet, update_bank
	Delta engine.Delta `json:"delta,omitempty"`

	// destroy_star: single, alpha or beta
	Target string `json:"target,omitempty"`

	// update_pending_powers: set or use_one
	Action string      `json:"action,omitempty"`
	Power  model.Power `json:"power,omitempty"`
	Count  uint8       `json:"count,omitempty"`

	// set_current_turn_status
	Status model.CurrentTurnStatus `json:"status,omitempty"`
}

// ToOperation converts the request into an engine operation
func (r OperationRequest) ToOperation() (engine.Operation, error) {
	switch r.Type {
	case engine.KindDiscoverSystem:
		if r.Star == nil {
			return nil, invalid(r.Type, "star is required")
		}
		return engine.DiscoverSystem{Name: r.Name, CenterStar: *r.Star}, nil

	case engine.KindForgetSystem:
		return engine.ForgetSystem{Name: r.Name}, nil

	case engine.KindUpdateFleet:
		if r.Starship == nil {
			return nil, invalid(r.Type, "starship is required")
		}
		return engine.UpdateFleet{SystemName: r.System, Player: r.Player, Starship: *r.Starship, Delta: r.Delta}, nil

	case engine.KindUpdateBank:
		if r.Pyramid == nil {
			return nil, invalid(r.Type, "pyramid is required")
		}
		return engine.UpdateBank{Pyramid: *r.Pyramid, Delta: r.Delta}, nil

	case engine.KindDestroyStar:
		var selector engine.StarSelector
		switch r.Target {
		case TargetSingle:
			selector = engine.DestroySingle()
		case TargetAlpha:
			selector = engine.DestroyBinary(model.Alpha)
		case TargetBeta:
			selector = engine.DestroyBinary(model.Beta)
		default:
			return nil, invalid(r.Type, fmt.Sprintf("unknown target %q", r.Target))
		}
		return engine.DestroyStar{SystemName: r.System, Star: selector}, nil

	case engine.KindUpdatePendingPowers:
		switch r.Action {
		case ActionSet:
			return engine.SetPowers(r.Power, r.Count), nil
		case ActionUseOne:
			return engine.UseOnePower(), nil
		}
		return nil, invalid(r.Type, fmt.Sprintf("unknown action %q", r.Action))

	case engine.KindSetCurrentTurnStatus:
		return engine.SetCurrentTurnStatus{Status: r.Status}, nil
	}
	return nil, fmt.Errorf("%w: %q", engine.ErrUnsupportedOperation, r.Type)
}

// FromOperation converts an engine operation into its wire form
func FromOperation(op engine.Operation) (OperationRequest, error) {
	switch op := op.(type) {
	case engine.DiscoverSystem:
		star := op.CenterStar
		return OperationRequest{Type: op.Kind(), Name: op.Name, Star: &star}, nil
	case engine.ForgetSystem:
		return OperationRequest{Type: op.Kind(), Name: op.Name}, nil
	case engine.UpdateFleet:
		ship := op.Starship
		return OperationRequest{Type: op.Kind(), System: op.SystemName, Player: op.Player, Starship: &ship, Delta: op.Delta}, nil
	case engine.UpdateBank:
		pyramid := op.Pyramid
		return OperationRequest{Type: op.Kind(), Pyramid: &pyramid, Delta: op.Delta}, nil
	case engine.DestroyStar:
		target := TargetSingle
		if id, binary := op.Star.Binary(); binary {
			target = string(id)
		}
		return OperationRequest{Type: op.Kind(), System: op.SystemName, Target: target}, nil
	case engine.UpdatePendingPowers:
		if power, count, set := op.Set(); set {
			return OperationRequest{Type: op.Kind(), Action: ActionSet, Power: power, Count: count}, nil
		}
		return OperationRequest{Type: op.Kind(), Action: ActionUseOne}, nil
	case engine.SetCurrentTurnStatus:
		return OperationRequest{Type: op.Kind(), Status: op.Status}, nil
	}
	return OperationRequest{}, fmt.Errorf("%w: %T", engine.ErrUnsupportedOperation, op)
}

// Operations converts every request in the batch. The returned error is a
// *engine.BatchError naming the first request that could not be converted.
func Operations(reqs []OperationRequest) ([]engine.Operation, error) {
	ops := make([]engine.Operation, len(reqs))
	for i, r := range reqs {
		op, err := r.ToOperation()
		if err != nil {
			return nil, &engine.BatchError{Index: i, Kind: r.Type, Err: err}
		}
		ops[i] = op
	}
	return ops, nil
}

func invalid(kind engine.Kind, msg string) error {
	return fmt.Errorf("%w: %s: %s", engine.ErrInvalidOperation, kind, msg)
}
