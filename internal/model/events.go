package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated       EventType = "game_created"
	EventOperationsApplied EventType = "operations_applied"
	EventTurnEnded         EventType = "turn_ended"
	EventGameFinished      EventType = "game_finished"
	EventGameDeleted       EventType = "game_deleted"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	Player    Player    `json:"player,omitempty"` // The player acting when the event happened
	Payload   any       `json:"payload,omitempty"`
}

// OperationsAppliedPayload contains data for operations applied events
type OperationsAppliedPayload struct {
	Kinds       []string `json:"kinds"`
	Fingerprint string   `json:"fingerprint"`
}

// TurnEndedPayload contains data for turn ended events
type TurnEndedPayload struct {
	Summary    TurnSummary `json:"summary"`
	NextPlayer Player      `json:"next_player,omitempty"`
	TurnNumber int         `json:"turn_number"`
}

// GameFinishedPayload contains data for game finished events
type GameFinishedPayload struct {
	ResignedBy Player `json:"resigned_by"`
}
