package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"carelink/config"
	"carelink/cron"
	"carelink/database"
	"carelink/database/repository"
	mongoRepo "carelink/database/repository/mongo"
	"carelink/database/repository/snapshot"
	"carelink/database/seed"
	"carelink/handlers"
	"carelink/metrics"
	"carelink/middleware"
	"carelink/routes"
	"carelink/services/auth"
	"carelink/services/billing"
	"carelink/services/directory"
	"carelink/services/search"
	"carelink/services/store"
	"carelink/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	stripe.Key = config.AppConfig.StripeKey

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Remote persistence is optional; without it the directory runs local-only.
	var remote repository.Adapter = repository.Unconfigured{}
	if config.RemoteConfigured() {
		client, err := database.InitDB(config.AppConfig.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		adapter := mongoRepo.NewAdapter(client.Database(config.AppConfig.DatabaseName))
		if err := adapter.EnsureIndexes(ctx); err != nil {
			logger.Warn("main: failed to ensure indexes", zap.Error(err))
		}
		remote = adapter
	} else {
		logger.Info("main: DATABASE_URL not set; running local-only")
	}

	if err := utils.InitCache(); err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	var cache search.Cache
	var snapshots snapshot.Store = snapshot.NewMemoryStore()
	if utils.CacheClient != nil {
		cache = search.NewRedisCache(utils.CacheClient, config.AppConfig.SearchCacheTTL)
		snapshots = snapshot.NewRedisStore(utils.SessionClient, config.AppConfig.SessionTTL)
	}

	// services.
	st := store.New(store.NewState(config.AppConfig.HistoryLimit))
	dir := directory.NewService(st, remote, snapshots, logger.Named("directory"), m)
	if _, err := dir.Hydrate(ctx, seed.Collections()); err != nil {
		logger.Fatal("main: failed to load directory", zap.Error(err))
	}

	secret := config.AppConfig.JWTSecret
	if secret == "" {
		if config.IsProduction() {
			logger.Fatal("main: JWT_SECRET is required in production")
		}
		secret = uuid.NewString()
		logger.Warn("main: JWT_SECRET not set; tokens will not survive a restart")
	}
	accounts, err := auth.SeedAccounts(bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("main: failed to seed accounts", zap.Error(err))
	}
	authSvc := auth.NewService(accounts, dir, utils.NewTokenIssuer(secret, config.AppConfig.SessionTTL), logger.Named("auth"), bcrypt.DefaultCost)
	if _, err := authSvc.Restore(ctx); err != nil {
		logger.Warn("main: failed to restore session", zap.Error(err))
	}

	searchSvc := search.NewService(st, cache, logger.Named("search"), m)
	billingSvc := billing.NewService(billing.Config{
		Key:           config.AppConfig.StripeKey,
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		ProPrice:      config.AppConfig.StripeProPrice,
		PremiumPrice:  config.AppConfig.StripePremiumPrice,
		LeadPrice:     config.AppConfig.StripeLeadPrice,
		SuccessURL:    config.AppConfig.CheckoutSuccessURL,
		CancelURL:     config.AppConfig.CheckoutCancelURL,
	}, logger.Named("billing"), m)

	// Completed checkouts go through the queue when Redis is available.
	var fulfiller billing.Fulfiller = billing.Inline{Upgrader: dir}
	var worker *cron.Worker
	if config.RedisConfigured() {
		redisOpt := asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}
		queueClient := asynq.NewClient(redisOpt)
		defer queueClient.Close()
		fulfiller = cron.Queue{Client: queueClient, Logger: logger.Named("queue")}
		worker = cron.NewWorker(redisOpt, dir, logger.Named("worker"))
		worker.Start()
	}

	utils.StartHealthMonitor(ctx, utils.RedisClients(), database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin, logger))

	handlerBundle := &handlers.HandlerBundle{
		Directory: dir,
		Search:    searchSvc,
		Auth:      authSvc,
		Billing:   billingSvc,
		Fulfiller: fulfiller,
	}
	routes.RegisterRoutes(router, handlerBundle, reg)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:              "0.0.0.0:" + config.AppConfig.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	utils.CloseCache()
	if err := database.CloseDB(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
