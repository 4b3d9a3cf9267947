package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/config"
	"github.com/tzchat/tzchat-backend/internal/infrastructure/database"
	"github.com/tzchat/tzchat-backend/internal/logger"
	"github.com/tzchat/tzchat-backend/internal/repository/postgres"
	"github.com/tzchat/tzchat-backend/internal/usecase/dailyscore"
)

func main() {
	ymd := flag.String("ymd", "", "day to score as YYYY-MM-DD in Asia/Seoul; yesterday when empty")
	loop := flag.Bool("loop", false, "keep running, firing daily at the configured batch hour")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	job := dailyscore.NewJob(
		postgres.NewUserRepository(db),
		postgres.NewEventRepository(db),
		postgres.NewScoreRepository(db),
		cfg.Score.HalfLife(),
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *loop {
		job.RunLoop(ctx, cfg.Score.BatchHourKST)
		return
	}
	if err := job.Run(ctx, *ymd); err != nil {
		log.Fatal("daily score batch failed", zap.Error(err))
	}
}
