package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/acctbay/acctbay-escrow-service/internal/app/background"
	"github.com/acctbay/acctbay-escrow-service/internal/client"
	"github.com/acctbay/acctbay-escrow-service/internal/config"
	httpdelivery "github.com/acctbay/acctbay-escrow-service/internal/delivery/http"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/crypto"
	publisher "github.com/acctbay/acctbay-escrow-service/internal/infrastructure/kafka"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/metrics"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/migrate"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres"
	"github.com/acctbay/acctbay-escrow-service/internal/infrastructure/postgres/repository"
	disputeusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/dispute"
	escrowusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/escrow"
	orderusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/order"
	vaultusecase "github.com/acctbay/acctbay-escrow-service/internal/usecase/vault"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Kafka publisher for order and dispute events
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := publisher.NewDefaultKafkaPublisher(brokers)
	defer pub.Close()

	// Repositories
	orderRepo := repository.NewDefaultOrderRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)
	escrowRepo := repository.NewDefaultEscrowRepository(db)
	credentialRepo := repository.NewDefaultCredentialRepository(db)

	// External collaborators
	paymentClient := client.NewHTTPPaymentClient(fmt.Sprintf("http://%s:%s", cfg.PaymentService.Host, cfg.PaymentService.Port))
	listingClient := client.NewHTTPListingClient(fmt.Sprintf("http://%s:%s", cfg.ListingService.Host, cfg.ListingService.Port))

	encryptor, err := crypto.NewAESEncryptor(cfg.Vault.EncryptionKey)
	if err != nil {
		log.Fatalf("failed to init credential encryptor: %v", err)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	// Usecases
	escrowUc := escrowusecase.NewDefaultEscrowUsecase(escrowRepo, paymentClient)
	vaultUc := vaultusecase.NewDefaultVaultUsecase(credentialRepo, orderRepo, encryptor)
	orderUc := orderusecase.NewDefaultOrderUsecase(
		orderRepo,
		escrowUc,
		vaultUc,
		listingClient,
		paymentClient,
		pub,
		orderMetrics,
		cfg.Policy,
	)
	disputeUc := disputeusecase.NewDefaultDisputeUsecase(
		disputeRepo,
		orderRepo,
		escrowUc,
		listingClient,
		pub,
		orderMetrics,
	)

	// Deadline sweeper
	tasks := background.NewBackgroundTasks(orderUc, cfg.Policy)
	tasks.StartAll(context.Background())

	// HTTP server
	e := echo.New()
	httpSvc := httpdelivery.NewHttpService(orderUc, disputeUc)
	httpSvc.RegisterRoutes(e)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("starting escrow service", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
