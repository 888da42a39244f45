package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JulianZulFont/AppDash-2/internal/config"
	"github.com/JulianZulFont/AppDash-2/internal/infrastructure/exchange"
	"github.com/JulianZulFont/AppDash-2/internal/infrastructure/logger"
	"github.com/JulianZulFont/AppDash-2/internal/scheduler"
	"github.com/JulianZulFont/AppDash-2/internal/usecase"
	"github.com/JulianZulFont/AppDash-2/internal/web"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Init Logger
	var log *zap.Logger
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	} else {
		log, err = logger.NewLogger(cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 3. Init Exchange (Binance)
	binance := exchange.NewBinanceAdapter(cfg.Exchange.BaseURL, cfg.ExchangeTimeout())

	// 4. Init Service
	service := usecase.NewDashboardService(binance, cfg.PriceTTL(), cfg.HistoryTTL(), log)

	// 5. Init Web Server
	if err := web.InitTemplates("internal/web/templates"); err != nil {
		log.Fatal("Failed to initialize templates", zap.Error(err))
	}
	hub := web.NewHub(log)

	// 6. Init Scheduler
	sched := scheduler.New(service, hub,
		cfg.Refresh.PriceSeconds, cfg.Refresh.HistorySeconds,
		cfg.ExchangeTimeout(), log)
	if err := sched.RegisterAll(); err != nil {
		log.Fatal("Failed to register scheduler tasks", zap.Error(err))
	}
	sched.Start()

	server := web.NewServer(cfg.Server.Port, service, sched, hub, log)

	// 7. Start Server
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// 8. Wait for Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down...")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
}
