package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/minhhoangvu/catalog-service/internal/config"
	"github.com/minhhoangvu/catalog-service/internal/http/metric"
	"github.com/minhhoangvu/catalog-service/internal/http/middleware"
	"github.com/minhhoangvu/catalog-service/internal/http/swagger"
	"github.com/minhhoangvu/catalog-service/internal/service"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
	"github.com/minhhoangvu/catalog-service/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	health      db.HealthChecker
	productSvc  service.ProductService
	variantSvc  service.VariantService
	categorySvc service.CategoryService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	health db.HealthChecker,
	productSvc service.ProductService,
	variantSvc service.VariantService,
	categorySvc service.CategoryService,
) *Service {
	return &Service{
		cfg:         cfg,
		logger:      log.With(slog.String("service", "http")),
		metrics:     metric.New(),
		health:      health,
		productSvc:  productSvc,
		variantSvc:  variantSvc,
		categorySvc: categorySvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	if err := s.RegisterHandlers(r); err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) error {
	validate, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("create validator: %w", err)
	}

	rp := responder{logger: s.logger}
	products := newProductHandler(s.productSvc, validate, rp)
	variants := newVariantHandler(s.variantSvc, rp)
	categories := newCategoryHandler(s.categorySvc, rp)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", products.createProduct)
			r.Get("/", products.listProducts)
			r.Get("/{productID}", products.getProduct)
			r.Patch("/{productID}", products.updateProduct)
			r.Delete("/{productID}", products.deleteProduct)
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/{variantID}", variants.getVariant)
			r.Patch("/{variantID}", variants.updateVariant)
			r.Delete("/{variantID}", variants.deleteVariant)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.listCategories)
			r.Get("/{categoryID}", categories.getCategory)
		})
	})

	r.Get("/healthz", s.handleHealth)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	return nil
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy, err := s.health.IsHealthy(r.Context())

	status := http.StatusOK
	if err != nil || !healthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	json.NewEncoder(w).Encode(map[string]bool{"healthy": status == http.StatusOK})
}
