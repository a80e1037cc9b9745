package engine

import (
	"errors"
	"fmt"
)

// Cross-cutting errors
var (
	ErrUnknownStarSystem        = errors.New("unknown star system")
	ErrDuplicatedStarSystemName = errors.New("duplicated star system name")
	ErrInvalidOperation         = errors.New("invalid operation")
	ErrUnsupportedOperation     = errors.New("unsupported operation")
)

// Pending powers errors
var (
	ErrCanOnlyBeSetOnce       = errors.New("pending powers can only be set once per turn")
	ErrPowersNotSet           = errors.New("pending powers were not set before being used")
	ErrPowersAlreadyExhausted = errors.New("pending powers were already exhausted")
)

// Fleet errors
var (
	ErrNoSuchStarships    = errors.New("cannot remove a starship from the fleet as there are none of such type")
	ErrFleetCountOverflow = errors.New("fleet count overflow - too many starships")
)

// Bank errors
var (
	ErrNoPyramidsInBank  = errors.New("cannot remove a pyramid from the bank as there are none of such type")
	ErrBankCountOverflow = errors.New("bank count overflow - too many pyramids")
)

// Forget system errors
var (
	ErrCannotForgetHomeworld = errors.New("cannot forget a homeworld")
	ErrFleetsNotEmpty        = errors.New("cannot forget a system with non-empty fleets")
)

// Destroy star errors
var (
	ErrCenterAlreadyEmpty   = errors.New("star system center is empty")
	ErrNotABinarySystem     = errors.New("cannot destroy binary star from a single star system")
	ErrNotASingleStarSystem = errors.New("cannot destroy single star from a binary system")
)

// Turn status errors
var (
	ErrCanOnlyChangeFromMakingActions = errors.New("can only change current turn status from making actions")
	ErrNoChange                       = errors.New("tried to change the current turn status to the same value")
)

// Family groups the errors one kind of operation can fail with
type Family string

const (
	FamilyPendingPowers Family = "pending_powers"
	FamilyFleet         Family = "fleet"
	FamilyBank          Family = "bank"
	FamilyForgetSystem  Family = "forget_system"
	FamilyDestroyStar   Family = "destroy_star"
	FamilyTurnStatus    Family = "turn_status"
)

func (f Family) action() string {
	switch f {
	case FamilyPendingPowers:
		return "cannot update pending powers"
	case FamilyFleet:
		return "cannot update fleet"
	case FamilyBank:
		return "cannot update bank"
	case FamilyForgetSystem:
		return "cannot forget system"
	case FamilyDestroyStar:
		return "cannot destroy star"
	case FamilyTurnStatus:
		return "cannot update current turn status"
	}
	return "cannot apply operation"
}

// OperationError wraps a family-specific error
type OperationError struct {
	Family Family
	Err    error
}

func (e *OperationError) Error() string {
	return e.Family.action() + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func familyError(family Family, err error) error {
	return &OperationError{Family: family, Err: err}
}

// DuplicatedStarSystemNameError is returned when a discovered system would
// reuse the name of a system already on the board
type DuplicatedStarSystemNameError struct {
	Name string
}

func (e *DuplicatedStarSystemNameError) Error() string {
	return fmt.Sprintf("star system with name %q already exists", e.Name)
}

// Is matches ErrDuplicatedStarSystemName
func (e *DuplicatedStarSystemNameError) Is(target error) bool {
	return target == ErrDuplicatedStarSystemName
}

// BatchError reports which operation of a batch failed
type BatchError struct {
	Index int
	Kind  Kind
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("operation %d (%s): %s", e.Index, e.Kind, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
