package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/project-dashboard/internal/auth"
	"github.com/frahmantamala/project-dashboard/internal/dashboard"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	"github.com/frahmantamala/project-dashboard/internal/project"
	"github.com/frahmantamala/project-dashboard/internal/transport/rest"
	"github.com/frahmantamala/project-dashboard/internal/user"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Workspace.Refresh(ctx); err != nil {
		a.Logger.Warn("Initial workspace refresh incomplete", "error", err)
	}
	workspaceDone := make(chan struct{})
	go func() {
		defer close(workspaceDone)
		_ = a.Workspace.Run(ctx, cfg.Workspace.RefreshInterval, a.Bus)
	}()

	router := chi.NewRouter()
	setupRoutes(router, a)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting HTTP server", "address", addr)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("Received signal, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Server failed to start", "error", err)
		}
		stop()
	}

	<-workspaceDone
	a.Logger.Info("Server stopped")
}

func setupRoutes(router *chi.Mux, a *app) {
	cfg := a.Config

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(a.DB.DB, a.Workspace, 3*cfg.Workspace.RefreshInterval),
		Auth:      auth.NewHandler(a.AuthService),
		RBAC:      auth.NewRBACAuthorization(a.Logger),
		User:      user.NewHandler(a.UserService),
		Project:   project.NewHandler(a.ProjectService),
		Lead:      lead.NewHandler(a.LeadService),
		Dashboard: dashboard.NewHandler(a.Workspace),
	}

	rest.RegisterAllRoutes(router, handlers, rest.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsEnabled: cfg.Observability.Metrics.Enabled,
		MetricsPath:    cfg.Observability.Metrics.Path,
	}, a.Logger)
}
