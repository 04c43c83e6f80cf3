package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/questforge/shopkeeper-service/internal/app/background"
	"github.com/questforge/shopkeeper-service/internal/config"
	"github.com/questforge/shopkeeper-service/internal/delivery/host"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/hostengine"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/kafka"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/metrics"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/migrate"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/postgres/repository"
	"github.com/questforge/shopkeeper-service/internal/infrastructure/wallet"
	"github.com/questforge/shopkeeper-service/internal/registry"
	"github.com/questforge/shopkeeper-service/internal/tickloop"
	"github.com/questforge/shopkeeper-service/internal/usecase/catalog"
	"github.com/questforge/shopkeeper-service/internal/usecase/session"
	"github.com/questforge/shopkeeper-service/internal/usecase/shop"
	"github.com/questforge/shopkeeper-service/internal/usecase/trade"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)

	if cfg.Persistence.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.Persistence.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	tradePublisher := kafka.NewPublisher(brokers, cfg.KafkaService.TradeTopic)
	shopPublisher := kafka.NewPublisher(brokers, cfg.KafkaService.ShopTopic)

	// Init snapshot repo
	snapshotRepo := repository.NewDefaultShopSnapshotRepository(db)
	// Init trade log repo
	tradeLogRepo := repository.NewDefaultTradeLogRepository(db)

	// Init ledger handler
	ledgerHandler, err := wallet.NewHTTPLedgerHandler(fmt.Sprintf("%s:%s", cfg.WalletService.Host, cfg.WalletService.Port))
	if err != nil {
		log.Fatalf("failed to init ledger handler")
	}

	// Init registry and restore the last snapshot
	shopRegistry := registry.New(registry.Limits{
		MaxShopsPerOwner: cfg.ShopLimits.MaxShopsPerOwner,
		MaxOfferStock:    cfg.ShopLimits.MaxOfferStock,
	}, slog.Default())

	records, err := snapshotRepo.LoadAll()
	if err != nil {
		log.Fatalf("failed to load shop records: %v", err)
	}
	if excluded := shopRegistry.Restore(records); excluded > 0 {
		slog.Warn("corrupt shop records excluded on restore", "excluded", excluded)
	}
	slog.Info("shop registry restored", "shops", shopRegistry.Count())

	tradeMetrics := metrics.NewTradeMetrics()
	tradeMetrics.SetShopsActive(shopRegistry.Count())

	// Host engine ports; an embedding engine replaces these
	inventory := hostengine.NewInMemoryInventory(cfg.ShopLimits.InventoryCapacity)
	view := hostengine.LogView{}

	// Init trade usecase
	tradeUsecase, err := trade.NewDefaultTradeUsecase(
		shopRegistry,
		ledgerHandler,
		inventory,
		tradeLogRepo,
		tradePublisher,
		tradeMetrics,
	)
	if err != nil {
		log.Fatalf("failed to init trade usecase: %v", err)
	}
	// Init session usecase
	sessionUsecase := session.NewDefaultSessionUsecase(shopRegistry, tradeUsecase, view)
	// Init shop usecase
	shopUsecase := shop.NewDefaultShopUsecase(shopRegistry, shopPublisher, tradeMetrics)
	// Init catalog usecase
	catalogUsecase := catalog.NewDefaultCatalogUsecase(shopRegistry)

	// Tick loop carries every mutating operation
	loop := tickloop.New()
	go loop.Run(ctx)

	// Host engine event bridge; the embedding engine picks it up via
	// host.Bridge and delivers its interaction callbacks through it
	host.Activate(host.NewHandler(loop, shopRegistry, sessionUsecase, shopUsecase, catalogUsecase))
	slog.Info("host event bridge published")

	// Periodic snapshot flush
	tasks := background.NewBackgroundTasks(shopRegistry, loop, snapshotRepo, tradeMetrics, cfg.Persistence.FlushInterval)
	tasks.StartAll(ctx)

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port)
		slog.Info("metrics server started", "addr", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("metrics server stopped", "error", err.Error())
		}
	}()

	<-ctx.Done()

	// Final flush on shutdown; the signal context is gone, use a fresh one
	shutdownCtx, cancel := context.WithCancel(context.Background())
	go loop.Run(shutdownCtx)
	if err := tasks.FlushIfDirty(shutdownCtx); err != nil {
		slog.Error("final snapshot flush failed", "error", err.Error())
	}
	cancel()

	if err := tradePublisher.Close(); err != nil {
		slog.Error("failed to close trade publisher", "error", err.Error())
	}
	if err := shopPublisher.Close(); err != nil {
		slog.Error("failed to close shop publisher", "error", err.Error())
	}
	slog.Info("shop service stopped")
}
