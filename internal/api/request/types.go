package request

import "github.com/mcoot/homeworlds-go/internal/model"

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	First  HomeworldRequest `json:"first"`
	Second HomeworldRequest `json:"second"`
}

// HomeworldRequest describes one homeworld; zero, one or two stars
type HomeworldRequest struct {
	Name  string       `json:"name"`
	Stars []model.Star `json:"stars"`
}

// Setup converts the request into a game setup
func (r CreateGameRequest) Setup() model.Setup {
	return model.Setup{
		First:  model.HomeworldSetup{Name: r.First.Name, Stars: r.First.Stars},
		Second: model.HomeworldSetup{Name: r.Second.Name, Stars: r.Second.Stars},
	}
}

// ApplyOperationsRequest is the request body for applying a batch of
// operations to the current turn
type ApplyOperationsRequest struct {
	ExpectedFingerprint string             `json:"expected_fingerprint,omitempty"`
	Operations          []OperationRequest `json:"operations"`
}

// EndTurnRequest is the request body for ending the current turn
type EndTurnRequest struct {
	ExpectedFingerprint string `json:"expected_fingerprint,omitempty"`
}
