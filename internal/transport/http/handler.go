// Package httptransport is the dispatch layer: it authenticates a request,
// supplies the signer public key and timestamp, and invokes one creation
// operation. It embeds no business logic.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tracechain/internal/platform/middleware"
	"tracechain/internal/registry/models"
	"tracechain/internal/replay"
	"tracechain/internal/transport/http/shared"
	dErrors "tracechain/pkg/domain-errors"
	"tracechain/pkg/requestcontext"
)

// Service defines the registry operations the dispatch layer invokes.
type Service interface {
	CreateTaskType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateTaskType) (string, error)
	CreateProductType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateProductType) (string, error)
	CreateEventParameterType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateEventParameterType) (string, error)
	CreateEventType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateEventType) (string, error)
	CreatePropertyType(ctx context.Context, signer string, timestamp time.Time, payload models.CreatePropertyType) (string, error)
}

// Handler handles the type creation endpoints.
type Handler struct {
	logger       *slog.Logger
	registry     Service
	jwtValidator middleware.JWTValidator
	replayGuard  replay.Guard
	replayTTL    time.Duration
}

// New creates a new registry Handler.
func New(
	registry Service,
	logger *slog.Logger,
	jwtValidator middleware.JWTValidator,
	replayGuard replay.Guard,
	replayTTL time.Duration) *Handler {
	return &Handler{
		logger:       logger,
		registry:     registry,
		jwtValidator: jwtValidator,
		replayGuard:  replayGuard,
		replayTTL:    replayTTL,
	}
}

// Register registers the creation routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	typesRouter := chi.NewRouter()
	typesRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	if h.replayGuard != nil {
		typesRouter.Use(middleware.ReplayGuard(h.replayGuard, h.replayTTL, h.logger))
	}
	typesRouter.Post("/task", h.handleCreateTaskType)
	typesRouter.Post("/product", h.handleCreateProductType)
	typesRouter.Post("/event-parameter", h.handleCreateEventParameterType)
	typesRouter.Post("/event", h.handleCreateEventType)
	typesRouter.Post("/property", h.handleCreatePropertyType)

	r.Mount("/types", typesRouter)
}

type createdResponse struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Address string `json:"address"`
}

func (h *Handler) handleCreateTaskType(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateTaskType
	if !h.decode(w, r, &payload) {
		return
	}
	h.invoke(w, r, "task-type", payload.ID, func(ctx context.Context, signer string, ts time.Time) (string, error) {
		return h.registry.CreateTaskType(ctx, signer, ts, payload)
	})
}

func (h *Handler) handleCreateProductType(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateProductType
	if !h.decode(w, r, &payload) {
		return
	}
	h.invoke(w, r, "product-type", payload.ID, func(ctx context.Context, signer string, ts time.Time) (string, error) {
		return h.registry.CreateProductType(ctx, signer, ts, payload)
	})
}

func (h *Handler) handleCreateEventParameterType(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateEventParameterType
	if !h.decode(w, r, &payload) {
		return
	}
	h.invoke(w, r, "event-parameter-type", payload.ID, func(ctx context.Context, signer string, ts time.Time) (string, error) {
		return h.registry.CreateEventParameterType(ctx, signer, ts, payload)
	})
}

func (h *Handler) handleCreateEventType(w http.ResponseWriter, r *http.Request) {
	var payload models.CreateEventType
	if !h.decode(w, r, &payload) {
		return
	}
	h.invoke(w, r, "event-type", payload.ID, func(ctx context.Context, signer string, ts time.Time) (string, error) {
		return h.registry.CreateEventType(ctx, signer, ts, payload)
	})
}

func (h *Handler) handleCreatePropertyType(w http.ResponseWriter, r *http.Request) {
	var payload models.CreatePropertyType
	if !h.decode(w, r, &payload) {
		return
	}
	h.invoke(w, r, "property-type", payload.ID, func(ctx context.Context, signer string, ts time.Time) (string, error) {
		return h.registry.CreatePropertyType(ctx, signer, ts, payload)
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body",
			"request_id", requestcontext.RequestID(r.Context()),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return false
	}
	return true
}

// invoke runs the operation with the signer and timestamp the middleware
// established, translating the outcome into the JSON envelope.
func (h *Handler) invoke(w http.ResponseWriter, r *http.Request, kind, id string, op func(ctx context.Context, signer string, ts time.Time) (string, error)) {
	ctx := r.Context()
	signer := requestcontext.SignerKey(ctx)
	if signer == "" {
		// Should never happen if RequireAuth is configured correctly.
		h.logger.ErrorContext(ctx, "signer missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	address, err := op(ctx, signer, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "type creation failed",
				"kind", kind,
				"id", id,
				"request_id", requestcontext.RequestID(ctx),
				"error", err.Error(),
			)
		}
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, createdResponse{Kind: kind, ID: id, Address: address})
}
