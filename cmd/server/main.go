package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"event-slot-wizard/config"
	"event-slot-wizard/internal/cache"
	"event-slot-wizard/internal/client"
	"event-slot-wizard/internal/database"
	"event-slot-wizard/internal/handler"
	"event-slot-wizard/internal/queue"
	"event-slot-wizard/internal/repository"
	"event-slot-wizard/internal/service"
	"event-slot-wizard/internal/wizard"
	"event-slot-wizard/internal/worker"
	"event-slot-wizard/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.LogLevel)
	log := logger.WithComponent("main")
	defer logger.L.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wizardCfg, err := newWizardConfig(cfg.Wizard)
	if err != nil {
		log.Fatal("Invalid wizard config", zap.Error(err))
	}

	pool, err := database.InitDatabase(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb, err := database.InitRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	planQueue, err := newPlanQueue(ctx, cfg.Queue, rdb)
	if err != nil {
		log.Fatal("Failed to initialize plan queue", zap.Error(err))
	}

	sessions := cache.NewRedisWizardSessionStore(rdb, cfg.Wizard.SessionTTL)
	inventory := cache.NewRedisCategoryInventoryManager(rdb)
	planRepo := repository.NewSlotPlanRepository(pool)

	var remote client.EventsAPI
	if cfg.EventsAPI.BaseURL != "" {
		remote = client.NewEventsAPIClient(cfg.EventsAPI.BaseURL, cfg.EventsAPI.Token, cfg.EventsAPI.Timeout)
		log.Info("Submitting plans to events api", zap.String("base_url", cfg.EventsAPI.BaseURL))
	}

	wizardService := service.NewWizardService(sessions, planRepo, wizardCfg)
	planService := service.NewPlanService(pool, sessions, planRepo, inventory, planQueue, remote)

	workerDone, err := worker.NewInventoryWorker(inventory, planQueue).Start(ctx)
	if err != nil {
		log.Fatal("Failed to start inventory worker", zap.Error(err))
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(handler.RequestLogger(), handler.Recovery())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	handler.NewWizardHandler(wizardService).RegisterRoutes(router)
	handler.NewPlanHandler(planService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Inventory worker did not stop in time")
	}
}

func newWizardConfig(c config.WizardConfig) (wizard.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return wizard.Config{}, err
	}
	overnight := wizard.OvernightPolicy(c.OvernightPolicy)
	if !overnight.IsValid() {
		return wizard.Config{}, fmt.Errorf("unknown overnight policy %q", c.OvernightPolicy)
	}
	deselect := wizard.DeselectPolicy(c.DeselectPolicy)
	if !deselect.IsValid() {
		return wizard.Config{}, fmt.Errorf("unknown deselect policy %q", c.DeselectPolicy)
	}
	return wizard.Config{
		Location:            loc,
		Overnight:           overnight,
		Deselect:            deselect,
		AllowEmptyBroadcast: c.AllowEmptyBroadcast,
	}, nil
}

func newPlanQueue(ctx context.Context, c config.QueueConfig, rdb *redis.Client) (queue.PlanQueue, error) {
	switch c.Driver {
	case "memory":
		return queue.NewMemoryPlanQueue(c.BufferSize, &queue.MemoryPlanQueueConfig{
			RetryDelay:    c.RetryDelay,
			MaxRetryCount: c.MaxRetryCount,
		}), nil
	case "redis":
		return queue.NewRedisStreamPlanQueue(ctx, rdb, c.ConsumerID, &queue.RedisStreamPlanQueueConfig{
			MaxRetryCount: c.MaxRetryCount,
		})
	default:
		return nil, fmt.Errorf("unknown queue driver %q", c.Driver)
	}
}
