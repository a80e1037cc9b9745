package game

import "github.com/mcoot/homeworlds-go/internal/model"

// EventPublisher receives game events after they are persisted
type EventPublisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}
