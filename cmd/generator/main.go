package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/drivecanvas/designer-backend/config"
	"github.com/drivecanvas/designer-backend/internal/database"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
	"github.com/drivecanvas/designer-backend/internal/pkg/generator"
	"github.com/drivecanvas/designer-backend/internal/pkg/redisdb"
	"github.com/drivecanvas/designer-backend/internal/pkg/storage"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	cfgFile, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("LoadConfig: %v", err)
	}

	cfg, err := config.ParseConfig(cfgFile)
	if err != nil {
		log.Fatalf("ParseConfig: %v", err)
	}

	brokers := config.GetEnv("KAFKA_BROKERS", cfg.Kafka.Brokers)
	topic := config.GetEnv("KAFKA_TOPIC", cfg.Kafka.Topic)
	groupID := config.GetEnv("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	redisClient := redisdb.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	jobRepo, err := database.NewJobRepository(redisClient)
	if err != nil {
		logrus.Fatalf("Failed to initialize job repository: %v", err)
	}

	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath, cfg.Server.BaseURL)
	bus := events.NewBus()

	gen := generator.NewEditGenerator(jobRepo, fileStorage, bus)

	go generator.StartEditGeneratorConsumer(strings.Split(brokers, ","), topic, groupID, gen)

	logrus.Print("Edit Generator Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("Edit Generator Shutting Down")
}
