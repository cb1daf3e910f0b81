package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/curated-storefront/internal/api"
	"github.com/example/curated-storefront/internal/auth"
	"github.com/example/curated-storefront/internal/catalog"
	"github.com/example/curated-storefront/internal/command"
	"github.com/example/curated-storefront/internal/config"
	"github.com/example/curated-storefront/internal/domain/cart"
	"github.com/example/curated-storefront/internal/generation"
	"github.com/example/curated-storefront/internal/infrastructure/kafka"
	"github.com/example/curated-storefront/internal/infrastructure/store"
	"github.com/example/curated-storefront/internal/logging"
	"github.com/example/curated-storefront/internal/query"
	"github.com/example/curated-storefront/internal/submission"
	"github.com/example/curated-storefront/internal/validation"
	"github.com/example/curated-storefront/internal/webhook"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Service: "storefront", Env: cfg.Env, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Kafka is optional; without brokers nothing is published.
	var publisher store.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
		logger.Info("publishing events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	eventStore, closeStore, err := openEventStore(ctx, cfg, publisher, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.WebhookURL == "" {
		logger.Warn("WEBHOOK_URL is not set; submissions will fail with a configuration error")
	}

	var generator generation.Generator
	if cfg.OpenAIAPIKey != "" {
		generator = generation.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY is not set; description generation is disabled")
	}

	var submitterOpts []submission.Option
	if publisher != nil {
		submitterOpts = append(submitterOpts, submission.WithPublisher(publisher))
	}

	cat := catalog.Default()
	validator := validation.New()
	cartSvc := cart.NewService(eventStore, logger)
	submitter := submission.NewSubmitter(webhook.NewClient(cfg.WebhookURL, cfg.WebhookTimeout), validator, logger, submitterOpts...)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)

	handlers := api.NewHandlers(
		command.NewHandler(cat, cartSvc, submitter, logger),
		query.NewHandler(cat, cartSvc),
		generation.NewService(generator, validator, logger),
		jwtService,
		auth.NewAdminAuthenticator(cfg.AdminPasswordHash),
		logger,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewRouter(handlers, jwtService, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.String("cart_store", cfg.CartStore))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openEventStore(ctx context.Context, cfg *config.Config, publisher store.Publisher, logger *zap.Logger) (store.EventStoreInterface, func(), error) {
	withLogger := store.WithLogger(logger.Named("store"))
	switch cfg.CartStore {
	case config.StorePostgres:
		db, err := store.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		es := store.NewPostgresEventStore(db, publisher, withLogger)
		if err := es.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		logger.Info("cart events stored in PostgreSQL")
		return es, func() { _ = db.Close() }, nil

	case config.StoreDynamo:
		client, err := store.NewDynamoClient(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, nil, fmt.Errorf("dynamodb client: %w", err)
		}
		logger.Info("cart events stored in DynamoDB",
			zap.String("table", cfg.DynamoTable),
			zap.String("snapshot_table", cfg.DynamoSnapshotTable),
		)
		return store.NewDynamoEventStore(client, cfg.DynamoTable, cfg.DynamoSnapshotTable, publisher, withLogger), func() {}, nil

	default:
		logger.Info("cart events kept in memory")
		return store.NewMemoryEventStore(publisher, withLogger), func() {}, nil
	}
}
