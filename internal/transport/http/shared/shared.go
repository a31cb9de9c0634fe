// Package shared holds the JSON envelope helpers every handler uses.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "tracechain/pkg/domain-errors"
)

// statusByCode centralizes domain error translation to HTTP responses so all
// handlers produce consistent envelopes.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation:   http.StatusBadRequest,
	dErrors.CodeUnauthorized: http.StatusForbidden,
	dErrors.CodeConflict:     http.StatusConflict,
	dErrors.CodeReference:    http.StatusUnprocessableEntity,
	dErrors.CodeConsistency:  http.StatusUnprocessableEntity,
	dErrors.CodeInternal:     http.StatusInternalServerError,
}

// WriteError writes the JSON error envelope for a coded domain error.
// Uncoded errors map to 500 without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	body := map[string]string{"error": string(code)}
	var de *dErrors.Error
	if errors.As(err, &de) && code != dErrors.CodeInternal {
		body["error_description"] = de.Message
	}
	WriteJSON(w, status, body)
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
