package rest_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/project-dashboard/internal/auth"
	leadDatamodel "github.com/frahmantamala/project-dashboard/internal/core/datamodel/lead"
	"github.com/frahmantamala/project-dashboard/internal/lead"
	leadPostgres "github.com/frahmantamala/project-dashboard/internal/lead/postgres"
	"github.com/frahmantamala/project-dashboard/internal/transport"
	"github.com/frahmantamala/project-dashboard/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) LastRefresh() time.Time { return c.at }

var _ = Describe("Router", func() {
	var (
		db       *gorm.DB
		tokens   *auth.JWTTokenGenerator
		slogger  *slog.Logger
		handlers rest.Handlers
		opts     rest.Options
	)

	build := func() *chi.Mux {
		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, handlers, opts, slogger)
		return router
	}

	bearer := func(role string) string {
		token, err := tokens.GenerateAccessToken("u-"+role, role+"@example.com", role)
		Expect(err).NotTo(HaveOccurred())
		return "Bearer " + token
	}

	BeforeEach(func() {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&leadDatamodel.Lead{})).To(Succeed())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		tokens = auth.NewJWTTokenGenerator(
			strings.Repeat("a", 32), strings.Repeat("b", 32), 15*time.Minute, time.Hour)
		authService := auth.NewService(nil, tokens, slogger)

		leadService := lead.NewService(leadPostgres.NewLeadRepository(db), nil, slogger)

		handlers = rest.Handlers{
			Health: rest.NewHealthHandler(sqlDB, fixedClock{at: time.Now()}, time.Minute),
			Auth:   &auth.Handler{BaseHandler: &transport.BaseHandler{Logger: slogger}, Service: authService},
			RBAC:   auth.NewRBACAuthorization(slogger),
			Lead:   &lead.Handler{BaseHandler: &transport.BaseHandler{Logger: slogger}, Service: leadService},
		}
		opts = rest.Options{AllowedOrigins: "https://app.example.com", MetricsEnabled: true}
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("health", func() {
		It("should report healthy components", func() {
			w := httptest.NewRecorder()
			build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp rest.HealthResponse
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Status).To(Equal(rest.HealthHealthy))
			Expect(resp.Components).To(HaveKey("postgres"))
			Expect(resp.Components).To(HaveKey("workspace"))
		})

		It("should be unhealthy while the snapshot is stale", func() {
			sqlDB, err := db.DB()
			Expect(err).NotTo(HaveOccurred())
			handlers.Health = rest.NewHealthHandler(sqlDB, fixedClock{at: time.Now().Add(-time.Hour)}, time.Minute)

			w := httptest.NewRecorder()
			build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).To(ContainSubstring("snapshot is stale"))
		})

		It("should answer ping", func() {
			w := httptest.NewRecorder()
			build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("middleware", func() {
		It("should echo or mint a request id", func() {
			router := build()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
			req.Header.Set("X-Request-ID", "req-123")
			router.ServeHTTP(w, req)
			Expect(w.Header().Get("X-Request-ID")).To(Equal("req-123"))

			w = httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
			Expect(w.Header().Get("X-Request-ID")).NotTo(BeEmpty())
		})

		It("should answer CORS preflight for allowed origins only", func() {
			router := build()

			req := httptest.NewRequest(http.MethodOptions, "/api/v1/leads", nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))

			req.Header.Set("Origin", "https://evil.example.com")
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})

		It("should expose prometheus metrics", func() {
			router := build()
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("http_request_duration_seconds"))
		})

		It("should serve the OpenAPI document", func() {
			w := httptest.NewRecorder()
			build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yml", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(HavePrefix("openapi: 3"))
		})
	})

	Describe("role gating", func() {
		It("should require a token for protected routes", func() {
			w := httptest.NewRecorder()
			build().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should keep leads away from employees", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
			req.Header.Set("Authorization", bearer("employee"))
			w := httptest.NewRecorder()
			build().ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should let managers work with leads", func() {
			router := build()

			req := httptest.NewRequest(http.MethodPost, "/api/v1/leads",
				strings.NewReader(`{"name":"Acme","contact_info":"a@acme.com","estimated_amount":5000}`))
			req.Header.Set("Authorization", bearer("manager"))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusCreated))

			req = httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
			req.Header.Set("Authorization", bearer("manager"))
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring("Acme"))
		})
	})
})
