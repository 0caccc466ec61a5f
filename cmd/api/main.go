package main

import (
	"log"
	"os"

	"github.com/contextly-dev/contextly/internal/config"
	"github.com/contextly-dev/contextly/internal/server"
	"github.com/contextly-dev/contextly/pkg/db/aws"
	"github.com/contextly-dev/contextly/pkg/db/postgres"
	"github.com/contextly-dev/contextly/pkg/db/redis"
	"github.com/contextly-dev/contextly/pkg/logger"
)

func main() {
	log.Println("Starting contextly server")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}
	cfgFile, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("LoadConfig: %v", err)
	}
	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("ParseConfig: %v", err)
	}

	appLogger := logger.NewApiLogger(cfg)
	appLogger.InitLogger()
	appLogger.Infof("AppVersion: %s, LogLevel: %s, Mode: %s", cfg.Server.AppVersion, cfg.Logger.Level, cfg.Server.Mode)

	psqlDB, err := postgres.NewPsqlDB(cfg)
	if err != nil {
		appLogger.Fatalf("Postgresql init: %s", err)
	}
	defer psqlDB.Close()
	appLogger.Infof("Postgres connected, Status: %#v", psqlDB.Stats())

	redisClient, err := redis.NewRedisClient(cfg)
	if err != nil {
		appLogger.Fatalf("Redis init: %s", err)
	}
	defer redisClient.Close()
	appLogger.Info("Redis connected")

	s3Client, err := aws.NewAWSClient(cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		appLogger.Fatalf("AWS client init: %s", err)
	}
	appLogger.Info("AWS S3 connected")

	if err = os.MkdirAll(cfg.Jobs.Root, 0o755); err != nil {
		appLogger.Fatalf("Jobs root init: %s", err)
	}

	s := server.NewServer(cfg, psqlDB, redisClient, s3Client, appLogger)
	if err = s.Run(); err != nil {
		appLogger.Fatalf("Server run: %s", err)
	}
}
