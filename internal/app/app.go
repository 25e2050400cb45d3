package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/broadcast"
	"github.com/bernaba123/E-Commerce-sub001/internal/config"
	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/handler"
	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/router"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/mongodb"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/nats"
	"github.com/bernaba123/E-Commerce-sub001/internal/payment"
	"github.com/bernaba123/E-Commerce-sub001/internal/simulator"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

type App struct {
	cfg    *config.Config
	logger *logger.Logger
}

func New(cfg *config.Config) *App {
	return &App{
		cfg:    cfg,
		logger: logger.NewLogger(),
	}
}

func (a *App) Run() error {
	a.logger.Info("Starting EthioConnect order service")

	mongoClient, err := a.initMongoDB()
	if err != nil {
		return err
	}
	defer mongoClient.Close()

	orderRepo, err := mongodb.NewOrderRepositoryMongo(mongoClient.Database(), a.logger)
	if err != nil {
		return fmt.Errorf("failed to init order repository: %w", err)
	}
	requestRepo, err := mongodb.NewRequestRepositoryMongo(mongoClient.Database(), a.logger)
	if err != nil {
		return fmt.Errorf("failed to init request repository: %w", err)
	}
	productRepo, err := mongodb.NewProductRepositoryMongo(mongoClient.Database(), a.logger)
	if err != nil {
		return fmt.Errorf("failed to init product repository: %w", err)
	}

	publisher, hub := a.initPublisher()
	defer publisher.Close()

	gate := payment.NewBreaker(payment.NewMockGate(), a.logger)

	orderUC := usecase.NewOrderUseCase(orderRepo, productRepo, gate, publisher, a.logger)
	requestUC := usecase.NewRequestUseCase(requestRepo, publisher, a.logger)
	trackingUC := usecase.NewTrackingUseCase(orderRepo, requestRepo)

	sim := simulator.New(orderRepo, publisher, a.logger,
		simulator.WithInterval(a.cfg.Simulator.Interval),
		simulator.WithBatch(a.cfg.Simulator.Batch),
	)
	if a.cfg.Simulator.Enabled {
		sim.Start(context.Background())
		defer sim.Stop()
	} else {
		a.logger.Info("Tracking simulator disabled")
	}

	engine := gin.Default()
	router.Setup(engine, router.Deps{
		Orders:             handler.NewOrderHandler(orderUC),
		Requests:           handler.NewRequestHandler(requestUC),
		Catalog:            handler.NewCatalogHandler(productRepo),
		Tracking:           handler.NewTrackingHandler(trackingUC, hub),
		Ready:              mongoClient.Ping,
		Redis:              a.initRedis(),
		CheckoutRateLimit:  a.cfg.HTTP.CheckoutRateLimit,
		CheckoutRateWindow: a.cfg.HTTP.CheckoutRateWindow,
	})

	server := &http.Server{
		Addr:    a.cfg.HTTP.Addr,
		Handler: engine,
	}

	return a.runServerWithGracefulShutdown(server)
}

func (a *App) initMongoDB() (*mongodb.Client, error) {
	a.logger.Info("Connecting to MongoDB", "uri", a.cfg.Mongo.URI, "db", a.cfg.Mongo.DB)

	client, err := mongodb.NewClient(a.cfg.Mongo.URI, a.cfg.Mongo.DB)
	if err != nil {
		a.logger.Error("Failed to connect to MongoDB", "error", err)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	a.logger.Info("Connected to MongoDB successfully")
	return client, nil
}

// initPublisher picks the broadcast transport. Without a NATS URL events fan
// out through the in-process hub, which also backs the live tracking feed;
// the hub is nil when events go to NATS instead.
func (a *App) initPublisher() (usecase.EventPublisher, *broadcast.Hub) {
	if a.cfg.NATS.URL == "" {
		a.logger.Info("NATS URL not set, broadcasting tracking events in-process")
		hub := broadcast.NewHub()
		return hub, hub
	}

	publisher, err := connectToNATSWithRetry(a.cfg.NATS.URL, a.logger, 3, 2*time.Second)
	if err != nil {
		a.logger.Warn("Failed to connect to NATS, continuing without tracking broadcast",
			"error", err,
			"url", a.cfg.NATS.URL)
		return broadcast.Noop{}, nil
	}

	a.logger.Info("Connected to NATS successfully")
	return publisher, nil
}

func (a *App) initRedis() *rd.Client {
	if a.cfg.Redis.Addr == "" {
		a.logger.Info("Redis not configured, checkout rate limiting disabled")
		return nil
	}
	return rd.NewClient(&rd.Options{
		Addr: a.cfg.Redis.Addr,
		DB:   a.cfg.Redis.DB,
	})
}

func (a *App) runServerWithGracefulShutdown(server *http.Server) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		a.logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.logger.Warn("Graceful shutdown timeout, forcing close", "error", err)
			return server.Close()
		}

		a.logger.Info("Graceful shutdown completed")
		return nil
	}
}

func connectToNATSWithRetry(url string, logger *logger.Logger, maxRetries int, delay time.Duration) (usecase.EventPublisher, error) {
	for i := 0; i < maxRetries; i++ {
		publisher, err := nats.NewPublisher(url, logger)
		if err == nil {
			return publisher, nil
		}

		logger.Warn("Failed to connect to NATS, retrying...",
			"attempt", i+1,
			"max_retries", maxRetries,
			"error", err)

		if i < maxRetries-1 {
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to NATS after %d attempts", maxRetries)
}
