package httptransport

//go:generate mockgen -source=handler.go -destination=mocks/registry-mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tracechain/internal/addressing"
	"tracechain/internal/platform/middleware"
	"tracechain/internal/registry/models"
	"tracechain/internal/replay"
	"tracechain/internal/transport/http/mocks"
	dErrors "tracechain/pkg/domain-errors"
	"tracechain/pkg/testutil"
)

const testSigner = "02a1b2c3d4e5f60718293a4b5c6d7e8f90"

type okValidator struct{}

func (okValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	if token != "valid-token" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	return &middleware.JWTClaims{SignerPublicKey: testSigner}, nil
}

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, okValidator{}, replay.NewInMemoryGuard(), time.Minute)

	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestTime)
	h.Register(s.router)
}

func (s *HandlerSuite) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) authorized(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func (s *HandlerSuite) TestAuthBoundary() {
	s.Run("rejects a request without a token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/task", models.CreateTaskType{ID: "x", Role: "y"})
		rec := s.do(req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("rejects an invalid token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/task", models.CreateTaskType{ID: "x", Role: "y"})
		req.Header.Set("Authorization", "Bearer wrong")
		rec := s.do(req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HandlerSuite) TestCreateTaskType() {
	s.Run("returns 201 with the committed address", func() {
		payload := models.CreateTaskType{ID: "harvester", Role: "operator"}
		address := addressing.For(addressing.KindTaskType, payload.ID)
		s.service.EXPECT().
			CreateTaskType(gomock.Any(), testSigner, gomock.Any(), payload).
			Return(address, nil)

		req := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/task", payload))
		rec := s.do(req)

		s.Require().Equal(http.StatusCreated, rec.Code)
		var resp struct {
			Kind    string `json:"kind"`
			ID      string `json:"id"`
			Address string `json:"address"`
		}
		testutil.DecodeJSONResponse(s.T(), rec, &resp)
		s.Equal("task-type", resp.Kind)
		s.Equal("harvester", resp.ID)
		s.Equal(address, resp.Address)
	})

	s.Run("returns 400 on a malformed body", func() {
		req := s.authorized(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/types/task", "{not json"))
		rec := s.do(req)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation maps to 400", dErrors.New(dErrors.CodeValidation, "id is required"), http.StatusBadRequest},
		{"unauthorized maps to 403", dErrors.New(dErrors.CodeUnauthorized, "signer is not the system administrator"), http.StatusForbidden},
		{"conflict maps to 409", dErrors.New(dErrors.CodeConflict, "id is already committed"), http.StatusConflict},
		{"reference maps to 422", dErrors.New(dErrors.CodeReference, "task type does not exist"), http.StatusUnprocessableEntity},
		{"consistency maps to 422", dErrors.New(dErrors.CodeConsistency, "typology mismatch"), http.StatusUnprocessableEntity},
		{"internal maps to 500", dErrors.New(dErrors.CodeInternal, "store down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.service.EXPECT().
				CreateTaskType(gomock.Any(), testSigner, gomock.Any(), gomock.Any()).
				Return("", tc.err)

			req := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/task", models.CreateTaskType{ID: "x", Role: "y"}))
			rec := s.do(req)
			s.Equal(tc.status, rec.Code)
		})
	}
}

func (s *HandlerSuite) TestInternalErrorHidesDetail() {
	s.service.EXPECT().
		CreateTaskType(gomock.Any(), testSigner, gomock.Any(), gomock.Any()).
		Return("", dErrors.New(dErrors.CodeInternal, "dsn secrets leaked here"))

	req := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/task", models.CreateTaskType{ID: "x", Role: "y"}))
	rec := s.do(req)

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.NotContains(rec.Body.String(), "dsn secrets")
}

func (s *HandlerSuite) TestCreateEventTypeRoute() {
	payload := models.CreateEventType{
		ID:                  "pressing",
		Typology:            "transformation",
		Name:                "Pressing",
		Description:         "olives to paste",
		EnabledTaskTypes:    []string{"presser"},
		EnabledProductTypes: []string{"olives"},
		DerivedProductTypes: []string{"paste"},
	}
	address := addressing.For(addressing.KindEventType, payload.ID)
	s.service.EXPECT().
		CreateEventType(gomock.Any(), testSigner, gomock.Any(), payload).
		Return(address, nil)

	req := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/event", payload))
	rec := s.do(req)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerSuite) TestCreatePropertyTypeRoute() {
	payload := models.CreatePropertyType{
		ID:                  "weight",
		Name:                "Weight",
		Kind:                "number",
		EnabledTaskTypes:    []string{"weigher"},
		EnabledProductTypes: []string{"cheese"},
	}
	address := addressing.For(addressing.KindPropertyType, payload.ID)
	s.service.EXPECT().
		CreatePropertyType(gomock.Any(), testSigner, gomock.Any(), payload).
		Return(address, nil)

	req := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/property", payload))
	rec := s.do(req)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *HandlerSuite) TestReplayGuardOnRoutes() {
	payload := models.CreateProductType{ID: "olive", Name: "Olive", Description: "fruit", Measure: "kilograms"}
	address := addressing.For(addressing.KindProductType, payload.ID)
	s.service.EXPECT().
		CreateProductType(gomock.Any(), testSigner, gomock.Any(), payload).
		Return(address, nil).
		Times(1)

	first := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/product", payload))
	first.Header.Set("X-Transaction-ID", "tx-77")
	s.Require().Equal(http.StatusCreated, s.do(first).Code)

	second := s.authorized(testutil.NewJSONRequest(s.T(), http.MethodPost, "/types/product", payload))
	second.Header.Set("X-Transaction-ID", "tx-77")
	s.Equal(http.StatusConflict, s.do(second).Code)
}
