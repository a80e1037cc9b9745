package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/model"
)

// APIError represents an API error response. Index and Operation are set
// when a batch fails, naming the operation that was rejected.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Index     *int   `json:"index,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidSetup        = "INVALID_SETUP"
	CodeInvalidOperation    = "INVALID_OPERATION"
	CodeUnsupportedOp       = "UNSUPPORTED_OPERATION"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameFinished        = "GAME_FINISHED"
	CodeFingerprintMismatch = "FINGERPRINT_MISMATCH"
	CodeUnknownStarSystem   = "UNKNOWN_STAR_SYSTEM"
	CodeDuplicatedName      = "DUPLICATED_STAR_SYSTEM_NAME"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Rule violation codes, one per engine error
var ruleCodes = []struct {
	err  error
	code string
}{
	{engine.ErrCanOnlyBeSetOnce, "CAN_ONLY_BE_SET_ONCE"},
	{engine.ErrPowersNotSet, "POWERS_NOT_SET"},
	{engine.ErrPowersAlreadyExhausted, "POWERS_ALREADY_EXHAUSTED"},
	{engine.ErrNoSuchStarships, "NO_SUCH_STARSHIPS"},
	{engine.ErrFleetCountOverflow, "FLEET_COUNT_OVERFLOW"},
	{engine.ErrNoPyramidsInBank, "NO_PYRAMIDS_IN_BANK"},
	{engine.ErrBankCountOverflow, "BANK_COUNT_OVERFLOW"},
	{engine.ErrCannotForgetHomeworld, "CANNOT_FORGET_HOMEWORLD"},
	{engine.ErrFleetsNotEmpty, "FLEETS_NOT_EMPTY"},
	{engine.ErrCenterAlreadyEmpty, "CENTER_ALREADY_EMPTY"},
	{engine.ErrNotABinarySystem, "NOT_A_BINARY_SYSTEM"},
	{engine.ErrNotASingleStarSystem, "NOT_A_SINGLE_STAR_SYSTEM"},
	{engine.ErrCanOnlyChangeFromMakingActions, "CAN_ONLY_CHANGE_FROM_MAKING_ACTIONS"},
	{engine.ErrNoChange, "NO_CHANGE"},
}

// Value errors from decoding request bodies
var invalidValueErrors = []error{
	model.ErrInvalidColor,
	model.ErrInvalidSize,
	model.ErrInvalidPlayer,
	model.ErrInvalidPower,
	model.ErrInvalidStarID,
	model.ErrInvalidTurnStatus,
	model.ErrInvalidCenter,
	model.ErrInvalidPendingPowers,
	model.ErrInvalidLedger,
}

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var batchErr *engine.BatchError
	if errors.As(err, &batchErr) {
		inner := *toHTTPError(batchErr.Err)
		index := batchErr.Index
		inner.apiError.Index = &index
		inner.apiError.Operation = string(batchErr.Kind)
		return &inner
	}

	// Map game errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "Game not found"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameFinished, Message: "Game is finished"}}
	case errors.Is(err, model.ErrFingerprintMismatch):
		return &httpError{http.StatusPreconditionFailed, APIError{Code: CodeFingerprintMismatch, Message: "Turn state has changed since it was read"}}
	case errors.Is(err, model.ErrInvalidSetup):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidSetup, Message: err.Error()}}

	// Map engine errors
	case errors.Is(err, engine.ErrUnknownStarSystem):
		return &httpError{http.StatusNotFound, APIError{Code: CodeUnknownStarSystem, Message: err.Error()}}
	case errors.Is(err, engine.ErrDuplicatedStarSystemName):
		return &httpError{http.StatusConflict, APIError{Code: CodeDuplicatedName, Message: err.Error()}}
	case errors.Is(err, engine.ErrInvalidOperation):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidOperation, Message: err.Error()}}
	case errors.Is(err, engine.ErrUnsupportedOperation):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeUnsupportedOp, Message: err.Error()}}
	}

	for _, rule := range ruleCodes {
		if errors.Is(err, rule.err) {
			return &httpError{http.StatusConflict, APIError{Code: rule.code, Message: err.Error()}}
		}
	}
	for _, target := range invalidValueErrors {
		if errors.Is(err, target) {
			return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: err.Error()}}
		}
	}

	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
