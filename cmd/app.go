package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/project-dashboard/internal"
	"github.com/frahmantamala/project-dashboard/internal/auth"
	authPostgres "github.com/frahmantamala/project-dashboard/internal/auth/postgres"
	"github.com/frahmantamala/project-dashboard/internal/core/events"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	leadPostgres "github.com/frahmantamala/project-dashboard/internal/lead/postgres"
	"github.com/frahmantamala/project-dashboard/internal/project"
	projectPostgres "github.com/frahmantamala/project-dashboard/internal/project/postgres"
	stagePostgres "github.com/frahmantamala/project-dashboard/internal/stage/postgres"
	"github.com/frahmantamala/project-dashboard/internal/user"
	userPostgres "github.com/frahmantamala/project-dashboard/internal/user/postgres"
	"github.com/frahmantamala/project-dashboard/internal/workspace"
	"github.com/frahmantamala/project-dashboard/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// app holds everything both the HTTP server and the dashboard CLI run on.
type app struct {
	Config *internal.Config
	Logger *slog.Logger
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Bus    *events.EventBus

	AuthService    *auth.Service
	UserService    *user.Service
	ProjectService *project.Service
	LeadService    *lead.Service
	Workspace      *workspace.Workspace
}

func newApp(cfg *internal.Config) (*app, error) {
	lg := logger.Configure(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	db, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)

	userService := user.NewService(userPostgres.NewUserRepository(gdb), bus, cfg.Security.BCryptCost, lg)
	projectService := project.NewService(projectPostgres.NewProjectRepository(gdb), bus, lg)
	leadService := lead.NewService(leadPostgres.NewLeadRepository(gdb), bus, lg)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gdb), tokens, lg)

	ws := workspace.New(projectService, leadService, userService, stagePostgres.NewStageReader(db), cfg.Workspace, lg)

	return &app{
		Config:         cfg,
		Logger:         lg,
		DB:             db,
		Gorm:           gdb,
		Bus:            bus,
		AuthService:    authService,
		UserService:    userService,
		ProjectService: projectService,
		LeadService:    leadService,
		Workspace:      ws,
	}, nil
}

func (a *app) Close() {
	a.Bus.Drain()
	if err := a.DB.Close(); err != nil {
		a.Logger.Error("Database close error", "error", err)
	}
}

// initDB opens the pgx-backed connection pool shared by sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	db, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}
