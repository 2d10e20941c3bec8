package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/appraisal"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/audit"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/auth"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/directory"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/notifications"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/reports"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/domain/template"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/platform/config"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/platform/db"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/platform/metrics"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/api"
	appraisalhandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/appraisal"
	audithandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/audit"
	authhandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/auth"
	directoryhandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/directory"
	notificationshandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/notifications"
	reportshandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/reports"
	sheethandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/sheet"
	templatehandler "github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/handlers/template"
	"github.com/Krishanu-Kabir-Sparsha/hr-employee-appraisal/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	authStore := auth.NewStore(pool)
	directoryStore := directory.NewStore(pool)
	templateService := template.NewService(template.NewStore(pool), directoryStore)
	appraisalService := appraisal.NewService(appraisal.NewStore(pool), templateService, directoryStore)
	reportsService := reports.NewService(reports.NewStore(pool))
	notifyService := notifications.NewService(notifications.NewStore(pool))
	auditService := audit.New(pool)
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryStore, authStore).RegisterRoutes(r)
		templatehandler.NewHandler(templateService, authStore).RegisterRoutes(r)
		appraisalhandler.NewHandler(appraisalService, directoryStore, authStore, notifyService, auditService).RegisterRoutes(r)
		sheethandler.NewHandler(appraisalService, authStore, auditService, collector, cfg.SheetLocale).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, appraisalService, authStore, cfg.SeedCompanyName).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)
	})

	log.Printf("appraisal server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
