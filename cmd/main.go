package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-remit-wallet/docs"
	"github.com/sbilibin2017/gw-remit-wallet/internal/config"
	"github.com/sbilibin2017/gw-remit-wallet/internal/facades"
	"github.com/sbilibin2017/gw-remit-wallet/internal/handlers"
	"github.com/sbilibin2017/gw-remit-wallet/internal/jwt"
	"github.com/sbilibin2017/gw-remit-wallet/internal/locker"
	"github.com/sbilibin2017/gw-remit-wallet/internal/logger"
	"github.com/sbilibin2017/gw-remit-wallet/internal/middlewares"
	"github.com/sbilibin2017/gw-remit-wallet/internal/models"
	"github.com/sbilibin2017/gw-remit-wallet/internal/repositories"
	"github.com/sbilibin2017/gw-remit-wallet/internal/services"
	"github.com/sbilibin2017/gw-remit-wallet/internal/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// settlementQueue is either the in-process worker pool or the Kafka consumer.
type settlementQueue interface {
	Enqueue(ctx context.Context, job models.SettlementJob) error
	Start(ctx context.Context)
	Stop()
}

// @title gw-remit-wallet API
// @version 1.0.0
// @description Cross-border wallet ledger: multi-currency balances, transfers, deposits, withdrawals and exchange
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run connects the infrastructure, wires services and serves HTTP until ctx
// is cancelled or a shutdown signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	// PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := repositories.Migrate(db.DB, cfg.Postgres.DB); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection: %w", err)
	}
	defer rdb.Close()

	// Exchanger gRPC
	conn, err := grpc.NewClient(cfg.Exchanger.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("grpc client %s: %w", cfg.Exchanger.Addr(), err)
	}
	defer conn.Close()

	// Kafka
	eventsWriter := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
		Topic:                  cfg.Kafka.EventsTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	defer eventsWriter.Close()

	// Repositories
	txm := repositories.NewTxManager(db)
	walletRepo := repositories.NewWalletRepository(db, txm, repositories.GetTxFromContext)
	balanceRepo := repositories.NewBalanceRepository(db, txm)
	txRepo := repositories.NewTransactionRepository(db, repositories.GetTxFromContext)
	outboxRepo := repositories.NewOutboxRepository(db, repositories.GetTxFromContext)
	userRepo := repositories.NewUserRepository(db)
	rateCache := repositories.NewExchangeRateCacheRepository(rdb, cfg.Ledger.RateTTL)

	// Facades
	rateSource := facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn), cfg.Exchanger.Timeout)
	notifier := facades.NewRedisNotifier(rdb, cfg.Redis.NotificationChannel)
	gateway := facades.NewPaymentGatewayHTTP(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout)

	var lk locker.Locker
	switch cfg.Ledger.LockBackend {
	case config.LockLocal:
		lk = locker.NewLocal()
	default:
		lockOpts := locker.DefaultOptions()
		lockOpts.Expiry = cfg.Ledger.LockExpiry
		lk = locker.NewRedis(rdb, lockOpts)
	}

	// Services
	oracle := services.NewConversionOracle(rateSource, rateCache, services.OracleConfig{
		FeeRate:    cfg.Ledger.FeeRate,
		RateTTL:    cfg.Ledger.RateTTL,
		MaxRetries: cfg.Ledger.RateMaxRetries,
	})
	ledger := services.NewLedgerService(balanceRepo, walletRepo, lk)
	limits := services.NewLimitPolicy(walletRepo, txRepo, oracle)
	dispatcher := services.NewEventDispatcher(eventsWriter, notifier, cfg.Ledger.EventMaxRetries)
	walletService := services.NewWalletService(walletRepo, ledger, cfg.Ledger.PrimaryCurrency, cfg.Ledger.SeedCurrencies)
	txService := services.NewTransactionService(services.TransactionDeps{
		Transactions: txRepo,
		Wallets:      walletRepo,
		Users:        userRepo,
		Ledger:       ledger,
		Limits:       limits,
		Oracle:       oracle,
		Gateway:      gateway,
		Outbox:       outboxRepo,
		Locker:       lk,
		Transactor:   txm,
	}, services.TransactionConfig{
		WithdrawalFeeRate: cfg.Ledger.WithdrawalFeeRate,
		CancelWindow:      cfg.Ledger.CancelWindow,
	})

	// Settlement queue
	var queue settlementQueue
	retries := uint64(cfg.Ledger.SettlementRetries)
	switch cfg.Ledger.QueueBackend {
	case config.QueueKafka:
		jobsWriter := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.SettlementTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer jobsWriter.Close()
		jobsReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.SettlementTopic,
		})
		defer jobsReader.Close()
		queue = workers.NewKafkaQueue(jobsWriter, jobsReader, retries, txService.ProcessSettlement,
			workers.WithGiveUp(txService.AbandonSettlement))
	default:
		queue = workers.NewPool(cfg.Ledger.SettlementWorkers, 1024, retries, txService.ProcessSettlement,
			workers.WithGiveUp(txService.AbandonSettlement))
	}
	txService.SetQueue(queue)
	queue.Start(context.WithoutCancel(ctx))
	defer queue.Stop()

	relay := services.NewOutboxRelay(outboxRepo, dispatcher, services.OutboxConfig{
		BatchSize:    cfg.Ledger.OutboxBatchSize,
		Interval:     cfg.Ledger.OutboxInterval,
		ClaimTimeout: cfg.Ledger.OutboxClaimTTL,
	})
	relay.Start(context.WithoutCancel(ctx))
	defer relay.Stop()

	// Router
	tokener := jwt.New(jwt.WithSecretKey(cfg.JWT.SecretKey), jwt.WithExpiration(cfg.JWT.Exp))
	transferLimit := middlewares.RateLimitMiddleware(
		middlewares.NewRedisCounter(rdb, "ratelimit:transfer:"),
		int64(cfg.RateLimit.TransferLimit),
		cfg.RateLimit.TransferWindow,
	)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/currencies", handlers.NewGetCurrenciesHandler(oracle))
		r.Get("/exchange/rates", handlers.NewGetExchangeRatesHandler(oracle))
		r.Get("/exchange/convert", handlers.NewConvertHandler(oracle))

		// Provider callbacks
		r.Group(func(r chi.Router) {
			r.Use(middlewares.CallbackMiddleware(cfg.App.CallbackSecret))
			r.Post("/callbacks/withdrawals/{id}", handlers.NewWithdrawalCallbackHandler(txService))
			r.Post("/callbacks/deposits/{id}", handlers.NewDepositCallbackHandler(txService))
		})

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))

			r.Post("/wallet", handlers.NewCreateWalletHandler(walletService))
			r.Get("/wallet", handlers.NewGetWalletHandler(walletService))
			r.Delete("/wallet", handlers.NewDeactivateWalletHandler(walletService))
			r.Get("/wallet/balance/{currency}", handlers.NewGetBalanceHandler(walletService))
			r.Put("/wallet/pin", handlers.NewSetPINHandler(walletService))
			r.Post("/wallet/deposit", handlers.NewDepositHandler(txService))
			r.Post("/wallet/deposit/confirm", handlers.NewConfirmDepositHandler(txService))
			r.Get("/transactions", handlers.NewHistoryHandler(txService))
			r.Get("/transactions/{id}", handlers.NewGetTransactionHandler(txService))
			r.Post("/transactions/{id}/cancel", handlers.NewCancelTransactionHandler(txService))

			r.Group(func(r chi.Router) {
				r.Use(transferLimit)
				r.Post("/transactions/send", handlers.NewSendMoneyHandler(txService))
				r.Post("/wallet/withdraw", handlers.NewWithdrawHandler(txService))
				r.Post("/exchange", handlers.NewExchangeHandler(txService))
			})
		})
	})

	docs.SwaggerInfo.Host = fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.App.Host, cfg.App.Port)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
