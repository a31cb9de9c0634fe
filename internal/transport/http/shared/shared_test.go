package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "tracechain/pkg/domain-errors"
)

func TestWriteErrorIncludesDescription(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.New(dErrors.CodeReference, `enabledTaskTypes: task-type "x" does not exist`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "reference")
	assert.Contains(t, rec.Body.String(), "does not exist")
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, dErrors.Wrap(errors.New("pg: connection refused"), dErrors.CodeInternal, "read state"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.NotContains(t, rec.Body.String(), "read state")
}

func TestWriteErrorDefaultsUncodedTo500(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("plain error"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
