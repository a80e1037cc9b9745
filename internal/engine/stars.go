package engine

import (
	"fmt"

	"github.com/mcoot/homeworlds-go/internal/model"
)

// StarSelector picks the star to destroy: the only star of a single-star
// system, or one star of a binary pair
type StarSelector struct {
	binary bool
	id     model.BinaryStarID
}

// DestroySingle selects the star of a single-star system
func DestroySingle() StarSelector {
	return StarSelector{}
}

// DestroyBinary selects one star of a binary system
func DestroyBinary(id model.BinaryStarID) StarSelector {
	return StarSelector{binary: true, id: id}
}

// Binary returns the selected star id when the selector targets a binary pair
func (s StarSelector) Binary() (model.BinaryStarID, bool) {
	return s.id, s.binary
}

func (s StarSelector) String() string {
	if s.binary {
		return "binary(" + string(s.id) + ")"
	}
	return "single"
}

// DestroyStar removes one star from a system's center
type DestroyStar struct {
	SystemName string
	Star       StarSelector
}

func (DestroyStar) Kind() Kind { return KindDestroyStar }
func (DestroyStar) operation() {}

func applyDestroyStar(state *model.CurrentTurnState, op DestroyStar) error {
	if id, binary := op.Star.Binary(); binary && id != model.Alpha && id != model.Beta {
		return fmt.Errorf("%w: invalid binary star id %q", ErrInvalidOperation, id)
	}

	system := state.GameBoard.FindSystem(op.SystemName)
	if system == nil {
		return ErrUnknownStarSystem
	}

	center, err := remainingCenter(system.Center, op.Star)
	if err != nil {
		return familyError(FamilyDestroyStar, err)
	}
	system.Center = center
	return nil
}

// remainingCenter computes the center left after destroying the selected
// star. The old center is only read, so a failure needs no restore.
func remainingCenter(old model.StarSystemCenter, selector StarSelector) (model.StarSystemCenter, error) {
	id, binary := selector.Binary()
	switch old.Kind() {
	case model.CenterSingle:
		if binary {
			return old, ErrNotABinarySystem
		}
		return model.EmptyCenter(), nil
	case model.CenterBinary:
		if !binary {
			return old, ErrNotASingleStarSystem
		}
		alpha, beta, _ := old.Binary()
		if id == model.Alpha {
			return model.SingleStar(beta), nil
		}
		return model.SingleStar(alpha), nil
	default:
		return old, ErrCenterAlreadyEmpty
	}
}
