package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/autorepair-scheduler/internal/audit"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/autorepair-scheduler/internal/db"
	domain "github.com/BruksfildServices01/autorepair-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/logger"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/routes"
	"github.com/BruksfildServices01/autorepair-scheduler/internal/timezone"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, zlog)
	stop()

	if err != nil {
		zlog.Error("server exited", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	zlog.Info("server stopped")
	_ = zlog.Sync()
}

// run owns every resource with a Close; it returns only after they are
// released, so queued audit events are flushed on every exit path.
func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	// ======================================================
	// SLOT CACHE (optional)
	// ======================================================
	var slotCache domain.SlotCache = cache.NoopSlotCache{}
	if cfg.CacheEnabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Warn("redis unavailable, slot cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			slotCache = cache.NewRedisSlotCache(rdb, cfg.SlotCacheTTL)
		}
	}

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, zlog)
	defer dispatcher.Close()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         zlog,
		Cache:       slotCache,
		AuditLogger: auditLogger,
		Audit:       dispatcher,
		Clock:       timezone.NewClock(timezone.Location(cfg.Timezone)),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	return serve(ctx, srv, zlog)
}

// serve blocks until ctx is done or the listener fails. A listener error
// is returned to the caller instead of exiting the process.
func serve(ctx context.Context, srv *http.Server, zlog *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
