package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/mcoot/homeworlds-go/internal/api/apierr"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// decodeJSON decodes the request body into v. An empty body leaves v
// untouched when allowEmpty is set. Errors that name an invalid value keep
// their mapping; anything else is reported as a malformed body.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	if apierr.Status(err) != http.StatusInternalServerError {
		return err
	}
	return apierr.NewInvalidRequestError("Invalid request body: " + err.Error())
}
