package main

import (
	"context"
	"log"
	"time"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/pubsub"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.Database.AutoMigrate {
		migrateCtx, migrateCancel := context.WithTimeout(ctx, time.Minute)
		err := database.Migrate(migrateCtx, db, logger)
		migrateCancel()
		if err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	rdb := database.InitRedis(config.Redis, logger)
	if rdb != nil {
		defer rdb.Close()
	}

	publisher := pubsub.NewPublisher(config.PubSub, rdb, logger)
	defer publisher.Close()

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, publisher, rdb, config, logger)

	if err := app.Service.Auth.EnsureAdmin(ctx, config.Admin); err != nil {
		logger.Error("Failed to bootstrap admin user", zap.Error(err))
	}

	go cmd.SessionJanitor(ctx, repos.Session, time.Hour, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
