package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/hr"
	"gearhr/internal/domain/reports"
	"gearhr/internal/platform/config"
	cryptoutil "gearhr/internal/platform/crypto"
	"gearhr/internal/platform/db"
	"gearhr/internal/platform/jobs"
	"gearhr/internal/platform/metrics"
	"gearhr/internal/platform/recordstore"
	adminhandler "gearhr/internal/transport/http/handlers/admin"
	attendancehandler "gearhr/internal/transport/http/handlers/attendance"
	authhandler "gearhr/internal/transport/http/handlers/auth"
	employeeshandler "gearhr/internal/transport/http/handlers/employees"
	payrollhandler "gearhr/internal/transport/http/handlers/payroll"
	reportshandler "gearhr/internal/transport/http/handlers/reports"
	"gearhr/internal/transport/http/middleware"
)

// File and store names of the four persisted tables.
const (
	EmployeesStore   = "employees.csv"
	PayrollStore     = "payroll_records.csv"
	AttendanceStore  = "attendance_records.csv"
	CredentialsStore = "user_credentials.csv"
)

// Backends are the persisted tables for every store the app opens.
type Backends struct {
	hr.Backends
	Credentials recordstore.Backend
}

type App struct {
	Config  config.Config
	Router  http.Handler
	HR      *hr.Service
	Auth    *auth.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	pool    *pgxpool.Pool
}

// New opens the backends selected by cfg and builds the app on them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.StorageBackend == config.BackendPostgres {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if _, err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		app, err := NewWithBackends(ctx, cfg, PostgresBackends(pool))
		if err != nil {
			pool.Close()
			return nil, err
		}
		app.pool = pool
		return app, nil
	}
	return NewWithBackends(ctx, cfg, CSVBackends(cfg.DataDir))
}

func CSVBackends(dir string) Backends {
	return Backends{
		Backends: hr.Backends{
			Employees:  recordstore.NewCSVFile(filepath.Join(dir, EmployeesStore)),
			Payroll:    recordstore.NewCSVFile(filepath.Join(dir, PayrollStore)),
			Attendance: recordstore.NewCSVFile(filepath.Join(dir, AttendanceStore)),
		},
		Credentials: recordstore.NewCSVFile(filepath.Join(dir, CredentialsStore)),
	}
}

func PostgresBackends(pool *pgxpool.Pool) Backends {
	return Backends{
		Backends: hr.Backends{
			Employees:  recordstore.NewPostgres(pool, "employees"),
			Payroll:    recordstore.NewPostgres(pool, "payroll_records"),
			Attendance: recordstore.NewPostgres(pool, "attendance_records"),
		},
		Credentials: recordstore.NewPostgres(pool, "credentials"),
	}
}

// NewWithBackends loads every store and wires the HTTP router. Background
// jobs are not started; call Start.
func NewWithBackends(ctx context.Context, cfg config.Config, backends Backends) (*App, error) {
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return nil, err
		}
		slog.Warn("JWT_SECRET not set, using a per-process secret; tokens will not survive restarts")
		cfg.JWTSecret = secret
	}

	hrService, report, loadErr := hr.Open(ctx, backends.Backends, hr.Options{SeedSampleData: cfg.SeedSampleData})
	if loadErr != nil {
		slog.Warn("some stores failed to load; serving with the data that did load", "err", loadErr)
	}
	slog.Info("stores loaded",
		"employees", report.Employees.Loaded,
		"payroll", report.Payroll.Loaded,
		"attendance", report.Attendance.Loaded,
		"skipped", report.Employees.Skipped+report.Payroll.Skipped+report.Attendance.Skipped,
		"migratedPayroll", report.MigratedPayroll,
	)

	authService := auth.NewService(backends.Credentials)
	if _, err := authService.Load(ctx, auth.SeedUser{
		UserID:   cfg.SeedAdminUser,
		Password: cfg.SeedAdminPassword,
		Role:     auth.RoleAdmin,
	}); err != nil {
		slog.Warn("credential store failed to load; logins will fail until restart", "err", err)
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
		if loadErr != nil {
			collector.RecordPersistenceFailure()
		}
	}
	jobService := jobs.New(jobs.Config{BackupDir: cfg.BackupDir, BackupInterval: cfg.BackupInterval}, hrService.Snapshot, collector)

	app := &App{
		Config:  cfg,
		HR:      hrService,
		Auth:    authService,
		Jobs:    jobService,
		Metrics: collector,
	}
	app.Router = app.routes(reports.NewService(cfg.PayslipDir, crypto))
	return app, nil
}

func (a *App) routes(payslips *reports.Service) http.Handler {
	cfg := a.Config
	perms := auth.StaticPermissions{}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(a.Auth, a.HR, perms, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		employeeshandler.NewHandler(a.HR, perms).RegisterRoutes(r)
		payrollhandler.NewHandler(a.HR, payslips, perms).RegisterRoutes(r)
		attendancehandler.NewHandler(a.HR, perms).RegisterRoutes(r)
		reportshandler.NewHandler(a.HR, perms).RegisterRoutes(r)
		adminhandler.NewHandler(a.HR, a.Jobs, a.Metrics, perms).RegisterRoutes(r)
	})

	return router
}

// Start launches the job worker and backup scheduler until ctx is done.
func (a *App) Start(ctx context.Context) {
	a.Jobs.Start(ctx)
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func Run() {
	config.LoadDotEnv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	slog.SetDefault(NewLogger(os.Stdout, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()
	app.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown failed", "err", err)
		}
	}()

	log.Printf("GEAR.HR server listening on %s (storage=%s)", cfg.Addr, cfg.StorageBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
