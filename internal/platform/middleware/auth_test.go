package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tracechain/pkg/domain-errors"
	"tracechain/pkg/requestcontext"
)

type stubValidator struct {
	signer string
	err    error
}

func (v stubValidator) ValidateToken(_ string) (*JWTClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return &JWTClaims{SignerPublicKey: v.signer}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAuth(t *testing.T) {
	t.Run("rejects a request without a bearer token", func(t *testing.T) {
		handler := RequireAuth(stubValidator{signer: "02abc"}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/types/task", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an invalid token", func(t *testing.T) {
		validator := stubValidator{err: dErrors.New(dErrors.CodeUnauthorized, "invalid token")}
		handler := RequireAuth(validator, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodPost, "/types/task", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("injects the signer key for a valid token", func(t *testing.T) {
		var gotSigner string
		handler := RequireAuth(stubValidator{signer: "02abc"}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSigner = requestcontext.SignerKey(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/types/task", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "02abc", gotSigner)
	})
}
