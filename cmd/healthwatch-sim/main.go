package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"healthwatch/internal/common/logger"
	"healthwatch/internal/common/redisutil"
	"healthwatch/internal/config"
	"healthwatch/internal/models"
	"healthwatch/internal/simulator"
)

// healthwatch-sim publishes synthetic wearable readings to the ingest
// stream, one per subject per tick. Useful for demos and for driving
// the monitor without real devices.
func main() {
	subjects := flag.String("subjects", "subject-1", "comma-separated subject ids to simulate")
	interval := flag.Duration("interval", 5*time.Second, "delay between readings per subject")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the generator")
	flag.Parse()

	// 1. load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. init logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "healthwatch-sim")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. connect Redis
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redisutil.NewClient(&cfg.Redis)
	defer redisClient.Close()
	if err := redisutil.Ping(ctx, redisClient); err != nil {
		log.Fatal("Failed to ping Redis", zap.Error(err))
	}

	ids := splitSubjects(*subjects)
	if len(ids) == 0 {
		log.Fatal("No subjects to simulate")
	}

	log.Info("Starting device simulator",
		zap.Strings("subjects", ids),
		zap.Duration("interval", *interval),
		zap.String("stream", cfg.Ingest.Stream),
	)

	// 4. publish readings until interrupted
	gen := simulator.NewGenerator(*seed)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	publish := func(now time.Time) {
		for _, id := range ids {
			msg := models.ReadingMessage{
				SubjectID: id,
				Reading:   gen.Generate(now),
			}
			if _, err := redisutil.PublishJSON(ctx, redisClient, cfg.Ingest.Stream, msg); err != nil {
				log.Error("Failed to publish reading",
					zap.String("subject_id", id),
					zap.Error(err),
				)
			}
		}
	}

	publish(time.Now())
	for {
		select {
		case now := <-ticker.C:
			publish(now)
		case sig := <-sigChan:
			log.Info("Received signal, stopping simulator", zap.String("signal", sig.String()))
			return
		}
	}
}

func splitSubjects(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
