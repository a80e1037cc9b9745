package model

import "errors"

// Common errors used across the application
var (
	// Value errors
	ErrInvalidColor         = errors.New("invalid color")
	ErrInvalidSize          = errors.New("invalid size")
	ErrInvalidPlayer        = errors.New("invalid player")
	ErrInvalidPower         = errors.New("invalid power")
	ErrInvalidStarID        = errors.New("invalid binary star id")
	ErrInvalidTurnStatus    = errors.New("invalid turn status")
	ErrInvalidCenter        = errors.New("invalid star system center")
	ErrInvalidPendingPowers = errors.New("invalid pending powers")
	ErrInvalidLedger        = errors.New("invalid ledger")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFinished        = errors.New("game is finished")
	ErrInvalidSetup        = errors.New("invalid game setup")
	ErrFingerprintMismatch = errors.New("turn state has changed since it was read")
)
