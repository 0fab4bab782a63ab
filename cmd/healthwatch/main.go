package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"healthwatch/internal/cache"
	"healthwatch/internal/common/logger"
	"healthwatch/internal/common/mqtt"
	"healthwatch/internal/common/redisutil"
	"healthwatch/internal/config"
	"healthwatch/internal/consumer"
	"healthwatch/internal/notifier"
	"healthwatch/internal/repository"
	"healthwatch/internal/service"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. init logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "healthwatch")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. connect PostgreSQL
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.Database, cfg.Database.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	// 4. connect Redis
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redisutil.NewClient(&cfg.Redis)
	defer redisClient.Close()
	if err := redisutil.Ping(ctx, redisClient); err != nil {
		log.Fatal("Failed to ping Redis", zap.Error(err))
	}

	// 5. wire the service
	alertsRepo := repository.NewAlertsRepository(db, log)
	escalator := notifier.NewEscalationNotifier(
		cfg.Escalation.EmergencyContact,
		cfg.Escalation.CaregiverEmails,
		log,
	)
	cacheManager := cache.NewManager(
		cache.NewRedisKVStore(redisClient),
		cfg.Monitor.Cache.KeyPrefix,
		cfg.Monitor.Cache.AlertsSuffix,
		cfg.Monitor.Cache.InsightSuffix,
		cfg.Monitor.Cache.TTL,
		log,
	)
	healthService := service.NewHealthService(cfg, alertsRepo, escalator, cacheManager, log)

	// 6. start ingestion consumers
	errChan := make(chan error, 3)

	streamConsumer := consumer.NewStreamConsumer(cfg, redisClient, healthService, log)
	go func() {
		if err := streamConsumer.Start(ctx); err != nil {
			errChan <- fmt.Errorf("stream consumer: %w", err)
		}
	}()

	mqttClient, err := mqtt.NewClient(&cfg.MQTT, log)
	if err != nil {
		log.Warn("MQTT broker unavailable, continuing without MQTT ingest", zap.Error(err))
	} else {
		defer mqttClient.Disconnect()
		mqttConsumer := consumer.NewMQTTConsumer(cfg, mqttClient, healthService, log)
		if err := mqttConsumer.Start(); err != nil {
			log.Fatal("Failed to start MQTT consumer", zap.Error(err))
		}
	}

	// 7. start the evaluation loop
	go func() {
		if err := healthService.Run(ctx); err != nil {
			errChan <- fmt.Errorf("evaluation loop: %w", err)
		}
	}()

	// 8. expose Prometheus metrics
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Metrics.Addr, nil); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	// 9. wait for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-errChan:
		log.Fatal("Service error", zap.Error(err))
	}

	log.Info("Health monitor stopped")
}
