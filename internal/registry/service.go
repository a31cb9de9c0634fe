// Package registry implements the validation-and-commit core for the type
// registries configuring the traceability ledger. Each creation request is
// validated in a fixed order (structural, authorization, uniqueness,
// referential, consistency) against one batched snapshot read, then committed
// with one atomic write. Any failure aborts with no state change.
package registry

import (
	"context"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"tracechain/internal/addressing"
	"tracechain/internal/audit"
	"tracechain/internal/codec"
	"tracechain/internal/domain"
	registrymetrics "tracechain/internal/registry/metrics"
	"tracechain/internal/registry/models"
	"tracechain/internal/state"
	dErrors "tracechain/pkg/domain-errors"
	"tracechain/pkg/platform/sentinel"
)

// Service orchestrates the five type creation operations and the one-time
// SystemAdmin bootstrap.
type Service struct {
	store   state.Store
	tx      state.TxRunner
	logger  *slog.Logger
	metrics *registrymetrics.Metrics
	audit   audit.Publisher
	tracer  trace.Tracer
}

type serviceConfig struct {
	logger  *slog.Logger
	metrics *registrymetrics.Metrics
	audit   audit.Publisher
}

// Option configures optional service collaborators.
type Option func(*serviceConfig)

// WithLogger attaches a structured logger; the service only logs post-commit
// emission problems, never the happy path.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *serviceConfig) { cfg.logger = logger }
}

// WithMetrics attaches per-operation prometheus metrics.
func WithMetrics(m *registrymetrics.Metrics) Option {
	return func(cfg *serviceConfig) { cfg.metrics = m }
}

// WithAuditPublisher attaches a sink for committed-creation events.
func WithAuditPublisher(p audit.Publisher) Option {
	return func(cfg *serviceConfig) { cfg.audit = p }
}

func NewService(store state.Store, tx state.TxRunner, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:   store,
		tx:      tx,
		logger:  logger,
		metrics: cfg.metrics,
		audit:   cfg.audit,
		tracer:  otel.Tracer("tracechain/internal/registry"),
	}
}

// BootstrapSystemAdmin commits the singleton SystemAdmin record. It succeeds
// at most once; later calls fail with a conflict. Operations authorize against
// the committed record, never against configuration.
func (s *Service) BootstrapSystemAdmin(ctx context.Context, publicKey string, timestamp time.Time) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.BootstrapSystemAdmin")
	defer span.End()

	if publicKey == "" {
		return "", dErrors.New(dErrors.CodeValidation, "publicKey is required")
	}
	if _, err := hex.DecodeString(publicKey); err != nil {
		return "", dErrors.Newf(dErrors.CodeValidation, "publicKey %q is not hex-encoded", publicKey)
	}

	address := addressing.SystemAdmin()
	err := s.runInTx(ctx, func(ctx context.Context) error {
		view, err := s.readView(ctx, []string{address})
		if err != nil {
			return err
		}
		if view.present(address) {
			return dErrors.New(dErrors.CodeConflict, "system administrator is already bootstrapped")
		}
		record := domain.SystemAdmin{PublicKey: publicKey, Timestamp: timestamp.Unix()}
		return s.commit(ctx, address, record)
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return address, nil
}

// CreateTaskType validates and commits a TaskType. TaskType has no foreign
// keys, so no referential checks apply.
func (s *Service) CreateTaskType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateTaskType) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateTaskType")
	defer span.End()
	start := time.Now()

	address := addressing.For(addressing.KindTaskType, payload.ID)
	err := payload.Validate()
	if err == nil {
		err = s.runInTx(ctx, func(ctx context.Context) error {
			view, err := s.readView(ctx, []string{addressing.SystemAdmin(), address})
			if err != nil {
				return err
			}
			if err := requireSystemAdmin(view, signer); err != nil {
				return err
			}
			if err := requireUnused(view, address, payload.ID); err != nil {
				return err
			}
			record := domain.TaskType{ID: payload.ID, Role: payload.Role}
			return s.commit(ctx, address, record)
		})
	}
	return s.finish(ctx, span, addressing.KindTaskType, payload.ID, address, signer, timestamp, start, err)
}

// CreateProductType validates and commits a ProductType. Every derived
// product entry must cite an existing ProductType; conversion rates were
// already checked structurally. Cycles in the derivation graph are not
// checked.
func (s *Service) CreateProductType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateProductType) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateProductType")
	defer span.End()
	start := time.Now()

	address := addressing.For(addressing.KindProductType, payload.ID)
	err := payload.Validate()
	if err == nil {
		err = s.runInTx(ctx, func(ctx context.Context) error {
			addrs := []string{addressing.SystemAdmin(), address}
			for _, dp := range payload.DerivedProducts {
				addrs = append(addrs, addressing.For(addressing.KindProductType, dp.ProductTypeID))
			}
			view, err := s.readView(ctx, addrs)
			if err != nil {
				return err
			}
			if err := requireSystemAdmin(view, signer); err != nil {
				return err
			}
			if err := requireUnused(view, address, payload.ID); err != nil {
				return err
			}
			for _, dp := range payload.DerivedProducts {
				if err := requireReference(view, addressing.KindProductType, dp.ProductTypeID, "derivedProducts"); err != nil {
					return err
				}
			}
			record := domain.ProductType{
				ID:              payload.ID,
				Name:            payload.Name,
				Description:     payload.Description,
				Measure:         payload.Measure,
				DerivedProducts: payload.DerivedProducts,
			}
			return s.commit(ctx, address, record)
		})
	}
	return s.finish(ctx, span, addressing.KindProductType, payload.ID, address, signer, timestamp, start, err)
}

// CreateEventParameterType validates and commits an EventParameterType.
func (s *Service) CreateEventParameterType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateEventParameterType) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateEventParameterType")
	defer span.End()
	start := time.Now()

	address := addressing.For(addressing.KindEventParameterType, payload.ID)
	err := payload.Validate()
	if err == nil {
		err = s.runInTx(ctx, func(ctx context.Context) error {
			view, err := s.readView(ctx, []string{addressing.SystemAdmin(), address})
			if err != nil {
				return err
			}
			if err := requireSystemAdmin(view, signer); err != nil {
				return err
			}
			if err := requireUnused(view, address, payload.ID); err != nil {
				return err
			}
			record := domain.EventParameterType{ID: payload.ID, Name: payload.Name, Kind: payload.Kind}
			return s.commit(ctx, address, record)
		})
	}
	return s.finish(ctx, span, addressing.KindEventParameterType, payload.ID, address, signer, timestamp, start, err)
}

// CreateEventType validates and commits an EventType. This is the multi-way
// cross-referential operation: parameters, enabled task types, enabled
// product types and derived product types must all resolve, the typology must
// agree with the derivation list, and every derived product type must be a
// declared derivation target of every enabled product type.
func (s *Service) CreateEventType(ctx context.Context, signer string, timestamp time.Time, payload models.CreateEventType) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreateEventType")
	defer span.End()
	start := time.Now()

	address := addressing.For(addressing.KindEventType, payload.ID)
	err := payload.Validate()
	if err == nil {
		err = s.runInTx(ctx, func(ctx context.Context) error {
			addrs := []string{addressing.SystemAdmin(), address}
			for _, id := range payload.Parameters {
				addrs = append(addrs, addressing.For(addressing.KindEventParameterType, id))
			}
			for _, id := range payload.EnabledTaskTypes {
				addrs = append(addrs, addressing.For(addressing.KindTaskType, id))
			}
			for _, id := range payload.EnabledProductTypes {
				addrs = append(addrs, addressing.For(addressing.KindProductType, id))
			}
			for _, id := range payload.DerivedProductTypes {
				addrs = append(addrs, addressing.For(addressing.KindProductType, id))
			}
			view, err := s.readView(ctx, addrs)
			if err != nil {
				return err
			}
			if err := requireSystemAdmin(view, signer); err != nil {
				return err
			}
			if err := requireUnused(view, address, payload.ID); err != nil {
				return err
			}
			if err := requireReferences(view, addressing.KindEventParameterType, payload.Parameters, "parameters"); err != nil {
				return err
			}
			if err := requireReferences(view, addressing.KindTaskType, payload.EnabledTaskTypes, "enabledTaskTypes"); err != nil {
				return err
			}
			if err := requireReferences(view, addressing.KindProductType, payload.EnabledProductTypes, "enabledProductTypes"); err != nil {
				return err
			}
			if err := requireTypologyConsistency(payload); err != nil {
				return err
			}
			if err := s.requireLegalDerivations(view, payload); err != nil {
				return err
			}
			record := domain.EventType{
				ID:                  payload.ID,
				Typology:            payload.Typology,
				Name:                payload.Name,
				Description:         payload.Description,
				Parameters:          payload.Parameters,
				EnabledTaskTypes:    payload.EnabledTaskTypes,
				EnabledProductTypes: payload.EnabledProductTypes,
				DerivedProductTypes: payload.DerivedProductTypes,
			}
			return s.commit(ctx, address, record)
		})
	}
	return s.finish(ctx, span, addressing.KindEventType, payload.ID, address, signer, timestamp, start, err)
}

// CreatePropertyType validates and commits a PropertyType.
func (s *Service) CreatePropertyType(ctx context.Context, signer string, timestamp time.Time, payload models.CreatePropertyType) (string, error) {
	ctx, span := s.tracer.Start(ctx, "registry.CreatePropertyType")
	defer span.End()
	start := time.Now()

	address := addressing.For(addressing.KindPropertyType, payload.ID)
	err := payload.Validate()
	if err == nil {
		err = s.runInTx(ctx, func(ctx context.Context) error {
			addrs := []string{addressing.SystemAdmin(), address}
			for _, id := range payload.EnabledTaskTypes {
				addrs = append(addrs, addressing.For(addressing.KindTaskType, id))
			}
			for _, id := range payload.EnabledProductTypes {
				addrs = append(addrs, addressing.For(addressing.KindProductType, id))
			}
			view, err := s.readView(ctx, addrs)
			if err != nil {
				return err
			}
			if err := requireSystemAdmin(view, signer); err != nil {
				return err
			}
			if err := requireUnused(view, address, payload.ID); err != nil {
				return err
			}
			if err := requireReferences(view, addressing.KindTaskType, payload.EnabledTaskTypes, "enabledTaskTypes"); err != nil {
				return err
			}
			if err := requireReferences(view, addressing.KindProductType, payload.EnabledProductTypes, "enabledProductTypes"); err != nil {
				return err
			}
			record := domain.PropertyType{
				ID:                  payload.ID,
				Name:                payload.Name,
				Kind:                payload.Kind,
				EnabledTaskTypes:    payload.EnabledTaskTypes,
				EnabledProductTypes: payload.EnabledProductTypes,
			}
			return s.commit(ctx, address, record)
		})
	}
	return s.finish(ctx, span, addressing.KindPropertyType, payload.ID, address, signer, timestamp, start, err)
}

// requireTypologyConsistency enforces: derivedProductTypes is non-empty iff
// the typology is transformation.
func requireTypologyConsistency(payload models.CreateEventType) error {
	transformation := payload.Typology == domain.TypologyTransformation
	if transformation && len(payload.DerivedProductTypes) == 0 {
		return dErrors.New(dErrors.CodeConsistency,
			"transformation event types require a non-empty derivedProductTypes list")
	}
	if !transformation && len(payload.DerivedProductTypes) > 0 {
		return dErrors.Newf(dErrors.CodeConsistency,
			"typology %q does not admit derived product types", payload.Typology.String())
	}
	return nil
}

// requireLegalDerivations checks each derived product type id resolves to a
// committed ProductType and is a declared derivation target of every enabled
// product type, not merely one of them. All enabled sources are checked for
// every derived product; there is no short-circuit on a single match.
func (s *Service) requireLegalDerivations(view stateView, payload models.CreateEventType) error {
	if len(payload.DerivedProductTypes) == 0 {
		return nil
	}
	enabled := make([]domain.ProductType, 0, len(payload.EnabledProductTypes))
	for _, id := range payload.EnabledProductTypes {
		record, err := codec.DecodeProductType(view[addressing.For(addressing.KindProductType, id)])
		if err != nil {
			return err
		}
		enabled = append(enabled, record)
	}
	for _, derived := range payload.DerivedProductTypes {
		if err := requireReference(view, addressing.KindProductType, derived, "derivedProductTypes"); err != nil {
			return err
		}
		for _, source := range enabled {
			if !source.Derives(derived) {
				return dErrors.Newf(dErrors.CodeConsistency,
					"derived product type %q is not a derivation target of enabled product type %q",
					derived, source.ID)
			}
		}
	}
	return nil
}

// commit encodes the record and issues the operation's single write. A
// conflict sentinel from the store means a concurrent creation committed the
// address between this operation's snapshot read and its write.
func (s *Service) commit(ctx context.Context, address string, record any) error {
	data, err := codec.Encode(record)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, map[string][]byte{address: data}); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.Wrap(err, dErrors.CodeConflict, "address was committed concurrently")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "write state")
	}
	return nil
}

// runInTx executes fn inside the store's transaction boundary and translates
// sentinels that surface from the boundary itself. A serializable backend
// reports the loser of a concurrent creation at commit time, after fn has
// already returned cleanly, so the sentinel arrives uncoded.
func (s *Service) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	err := s.tx.RunInTx(ctx, fn)
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.Wrap(err, dErrors.CodeConflict, "a concurrent creation committed first")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "run transaction")
}

// finish records metrics, emits the audit event on success, and annotates the
// span. Audit emission happens after the commit; a sink failure is logged but
// never undoes the committed write.
func (s *Service) finish(ctx context.Context, span trace.Span, kind addressing.Kind, id, address, signer string, timestamp time.Time, start time.Time, err error) (string, error) {
	if err != nil {
		span.RecordError(err)
		if s.metrics != nil {
			s.metrics.RecordFailure(kind.String(), string(dErrors.CodeOf(err)))
		}
		return "", err
	}
	if s.metrics != nil {
		s.metrics.RecordCreated(kind.String())
		s.metrics.ObserveDuration(kind.String(), start)
	}
	if s.audit != nil {
		event := audit.Event{
			Timestamp:  timestamp,
			EntityKind: kind.String(),
			EntityID:   id,
			Address:    address,
			Signer:     signer,
		}
		if emitErr := s.audit.Emit(ctx, event); emitErr != nil {
			s.logger.WarnContext(ctx, "audit emission failed after commit",
				"kind", kind.String(),
				"id", id,
				"error", emitErr.Error(),
			)
		}
	}
	return address, nil
}
