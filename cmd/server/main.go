package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tracechain/internal/audit"
	jwttoken "tracechain/internal/jwt_token"
	"tracechain/internal/platform/config"
	"tracechain/internal/platform/httpserver"
	"tracechain/internal/platform/logger"
	"tracechain/internal/platform/middleware"
	platformredis "tracechain/internal/platform/redis"
	"tracechain/internal/registry"
	registrymetrics "tracechain/internal/registry/metrics"
	"tracechain/internal/replay"
	"tracechain/internal/state"
	httptransport "tracechain/internal/transport/http"
	dErrors "tracechain/pkg/domain-errors"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/registry.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open state store", "driver", cfg.StorageDriver, "error", err.Error())
		os.Exit(1)
	}
	defer closeStore()

	guard, closeGuard, err := openReplayGuard(cfg)
	if err != nil {
		log.Error("open replay guard", "error", err.Error())
		os.Exit(1)
	}
	defer closeGuard()

	inbox := make(chan audit.Event, 256)
	sink, closeSink, err := openAuditSink(cfg)
	if err != nil {
		log.Error("open audit sink", "error", err.Error())
		os.Exit(1)
	}
	defer closeSink()

	svc := registry.NewService(store, store,
		registry.WithLogger(log),
		registry.WithMetrics(registrymetrics.New()),
		registry.WithAuditPublisher(audit.NewChannelPublisher(inbox)),
	)

	if cfg.AdminPublicKey != "" {
		if _, err := svc.BootstrapSystemAdmin(ctx, cfg.AdminPublicKey, time.Now()); err != nil {
			if !dErrors.Is(err, dErrors.CodeConflict) {
				log.Error("bootstrap system administrator", "error", err.Error())
				os.Exit(1)
			}
			log.Info("system administrator already bootstrapped")
		} else {
			log.Info("system administrator bootstrapped")
		}
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	handler := httptransport.New(svc, log, validatorAdapter{jwtService}, guard, cfg.ReplayTTL)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler, log))

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		worker := audit.NewWorker(sink, inbox)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("starting tracechain registry", "addr", cfg.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

// openStore selects the state backend. The memory driver serves local runs
// and tests; postgres is the durable deployment.
func openStore(ctx context.Context, cfg config.Config) (stateStore, func(), error) {
	switch cfg.StorageDriver {
	case "memory":
		return state.NewInMemoryStore(), func() {}, nil
	case "postgres":
		store, err := state.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, errors.New("unknown storage driver " + cfg.StorageDriver)
	}
}

// stateStore is what the registry service needs from a backend.
type stateStore interface {
	state.Store
	state.TxRunner
}

func openReplayGuard(cfg config.Config) (replay.Guard, func(), error) {
	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return replay.NewInMemoryGuard(), func() {}, nil
	}
	return replay.NewRedisGuard(client.Client), func() { _ = client.Close() }, nil
}

func openAuditSink(cfg config.Config) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return audit.NewInMemoryStore(), func() {}, nil
	}
	publisher, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
	if err != nil {
		return nil, nil, err
	}
	return kafkaSink{publisher}, publisher.Close, nil
}

// validatorAdapter narrows the jwt service's claims to what the middleware
// consumes.
type validatorAdapter struct {
	svc *jwttoken.JWTService
}

func (a validatorAdapter) ValidateToken(token string) (*middleware.JWTClaims, error) {
	claims, err := a.svc.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &middleware.JWTClaims{SignerPublicKey: claims.SignerPublicKey}, nil
}

// kafkaSink adapts the Kafka publisher to the worker's Store contract; the
// audit trail lives in the topic, so List is not supported here.
type kafkaSink struct {
	publisher *audit.KafkaPublisher
}

func (s kafkaSink) Append(ctx context.Context, event audit.Event) error {
	return s.publisher.Emit(ctx, event)
}

func (s kafkaSink) List(context.Context) ([]audit.Event, error) {
	return nil, errors.New("audit events are consumed from kafka, not listed")
}
