package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"campusreport/internal/audit"
	"campusreport/internal/credential"
	"campusreport/internal/identity"
	identitymetrics "campusreport/internal/identity/metrics"
	"campusreport/internal/platform/config"
	"campusreport/internal/platform/httpserver"
	"campusreport/internal/platform/logger"
	platformredis "campusreport/internal/platform/redis"
	"campusreport/internal/report"
	reportmetrics "campusreport/internal/report/metrics"
	"campusreport/internal/storage"
	"campusreport/internal/token"
	httptransport "campusreport/internal/transport/http"
)

const auditInboxSize = 256

// main wires the storage backend, the domain services, and the HTTP router,
// then runs the server and the audit worker until a shutdown signal arrives.
func main() {
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	blobs, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage backend: %w", err)
	}
	defer cleanup()

	hasher, err := credential.ForAlgorithm(cfg.DigestAlgorithm)
	if err != nil {
		return fmt.Errorf("configure digest algorithm: %w", err)
	}

	users, err := identity.NewUserStore(ctx, blobs, cfg.SuperAdminEmail, log)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	reportStore, err := report.NewStore(ctx, blobs, log)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	inbox := make(chan audit.Event, auditInboxSize)
	auditor := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(audit.NewInMemoryStore(), inbox, log)

	manager := identity.NewManager(users, hasher, cfg.InstitutionDomain,
		auditor, identitymetrics.New(), log)
	reports := report.NewRepository(reportStore, auditor, reportmetrics.New(), log)
	tokens := token.NewService(cfg.JWTSigningKey, cfg.TokenTTL)

	handler := httptransport.NewHandler(manager, reports, tokens, cfg.ExportDir, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.Run(gctx)
	})

	g.Go(func() error {
		log.Info("server starting", "addr", cfg.Addr, "backend", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openBackend selects the blob store from config. The returned cleanup closes
// whatever connection the backend holds.
func openBackend(ctx context.Context, cfg config.Config) (storage.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		return storage.NewInMemory(), noop, nil

	case config.BackendFile:
		store, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendRedis:
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("redis backend selected but CAMPUSREPORT_REDIS_URL is empty")
		}
		return storage.NewRedis(client.Client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		store := storage.NewPostgres(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
