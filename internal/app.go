package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-profile-api/config"
	"user-profile-api/internal/application/ports"
	"user-profile-api/internal/application/services"
	"user-profile-api/internal/domain/photo"
	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/infrastructure/db/postgres"
	pgUser "user-profile-api/internal/infrastructure/db/postgres/user"
	"user-profile-api/internal/infrastructure/db/sqlite"
	sqliteUser "user-profile-api/internal/infrastructure/db/sqlite/user"
	"user-profile-api/internal/infrastructure/metrics"
	"user-profile-api/internal/infrastructure/storage/local"
	s3store "user-profile-api/internal/infrastructure/storage/s3"
	"user-profile-api/internal/interface/api/rest"
	"user-profile-api/internal/interface/api/rest/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	pool       *pgxpool.Pool
	sqlDB      *sql.DB
	userRepo   domain.Repository
	photoStore ports.PhotoStore
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
	}

	// db
	if err = a.initDB(ctx); err != nil {
		logger.Fatal("failed to initialize database", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}

	// photo store
	if err = a.initPhotoStore(ctx); err != nil {
		var initErr *photo.StorageInitError
		if errors.As(err, &initErr) {
			logger.Fatal("cannot prepare upload storage", zap.String("root", initErr.Root), zap.Error(initErr.Err))
		}
		logger.Fatal("failed to initialize photo store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}

	return a, nil
}

func (a *App) initDB(ctx context.Context) error {
	switch a.cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := sqlite.New(ctx, a.logger, a.cfg.DB.SQLitePath)
		if err != nil {
			return err
		}
		a.sqlDB = db
		if err = sqlite.Migrate(ctx, db); err != nil {
			return err
		}
		a.userRepo = sqliteUser.NewRepository(db)
	default:
		dbDsn, err := a.cfg.DBDSN()
		if err != nil {
			return err
		}
		pool, err := postgres.New(ctx, a.logger, dbDsn)
		if err != nil {
			return err
		}
		a.pool = pool
		if err = postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		a.userRepo = pgUser.NewRepository(pool)
	}

	return nil
}

func (a *App) initPhotoStore(ctx context.Context) error {
	var store ports.PhotoStore
	switch a.cfg.Storage.Driver {
	case config.StorageS3:
		s, err := s3store.New(ctx, a.logger, a.cfg.S3)
		if err != nil {
			return err
		}
		store = s
	default:
		store = local.New(a.logger, a.cfg.Storage.UploadDir)
	}

	if err := store.EnsureRoot(ctx); err != nil {
		return err
	}
	a.photoStore = store

	return nil
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlDB != nil {
		_ = a.sqlDB.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	userService := services.NewUserService(a.userRepo, a.mCounter)

	// controllers
	rest.NewUserController(a.router, userService, a.photoStore, a.logger, a.mCounter)
	rest.NewUploadController(a.router, a.photoStore, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
