package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/wanderbook/wanderbook/config"
	repository "github.com/wanderbook/wanderbook/internal/database/postgres"
	rediscache "github.com/wanderbook/wanderbook/internal/database/redis"
	"github.com/wanderbook/wanderbook/internal/service"
	"github.com/wanderbook/wanderbook/internal/transport"
	"github.com/wanderbook/wanderbook/internal/worker"
	"github.com/wanderbook/wanderbook/pkg/postgres"
	"github.com/wanderbook/wanderbook/pkg/queue"
	"github.com/wanderbook/wanderbook/pkg/redis"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Monetary amounts serialize as bare JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database
	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.Database.Seed {
		if err := postgres.SeedCatalog(db); err != nil {
			logrus.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// Initialize repositories
	experienceRepo := repository.NewExperienceRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Initialize redis-backed catalog cache
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	cacheRepo := rediscache.NewCacheRepository(redisClient, cfg.Catalog.CacheTTL)
	logrus.Info("Catalog cache initialized")

	// Initialize event queue
	var eventPublisher service.EventPublisher
	if cfg.Queue.Enabled {
		retryManager := queue.NewRetryManager(cfg.Queue.MaxRetries, cfg.Queue.BaseDelay)
		redisQueue, err := queue.NewRedisQueue(redisClient, cfg.Queue.Stream, retryManager)
		if err != nil {
			logrus.Errorf("Failed to initialize event queue: %v. Continuing without queue...", err)
		} else {
			eventPublisher = service.NewQueueAdapter(redisQueue)
			logrus.Info("Event queue initialized")
		}
	}

	// Initialize services
	engine := service.NewPricingEngine(cfg.Pricing.TaxRate)
	catalogService := service.NewCatalogService(experienceRepo, cacheRepo)
	promoService := service.NewPromoService(promoRepo)
	pricingService := service.NewPricingService(experienceRepo, promoRepo, engine)
	reservationService := service.NewReservationService(slotRepo, bookingRepo, experienceRepo, promoRepo, engine, eventPublisher)
	bookingQueryService := service.NewBookingQueryService(bookingRepo, experienceRepo, slotRepo)

	// Initialize cache refresh worker
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshWorker := worker.NewCatalogRefreshWorker(catalogService, cfg.Catalog.RefreshInterval)
	go refreshWorker.Start(ctx)
	logrus.Info("Catalog refresh worker started")

	// Initialize handlers
	experienceHandler := transport.NewExperienceHandler(catalogService)
	promoHandler := transport.NewPromoHandler(promoService)
	pricingHandler := transport.NewPricingHandler(pricingService)
	bookingHandler := transport.NewBookingHandler(reservationService, bookingQueryService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(experienceHandler, promoHandler, pricingHandler, bookingHandler)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
