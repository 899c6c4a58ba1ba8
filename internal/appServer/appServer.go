// launching the server, redis, postgres, kafka
package appServer

import (
	"context"
	"crypto/tls"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/drivecanvas/designer-backend/config"
	"github.com/drivecanvas/designer-backend/internal/database"
	"github.com/drivecanvas/designer-backend/internal/pkg/events"
	"github.com/drivecanvas/designer-backend/internal/pkg/kafka"
	"github.com/drivecanvas/designer-backend/internal/pkg/postgres"
	"github.com/drivecanvas/designer-backend/internal/pkg/redisdb"
	"github.com/drivecanvas/designer-backend/internal/pkg/render"
	"github.com/drivecanvas/designer-backend/internal/pkg/storage"
	"github.com/drivecanvas/designer-backend/internal/service"
	"github.com/drivecanvas/designer-backend/internal/transport"
	"github.com/drivecanvas/designer-backend/internal/worker"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	db, err := postgres.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redisdb.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()

	jobRepo, err := database.NewJobRepository(redisClient)
	if err != nil {
		logrus.Fatalf("Failed to initialize job repository: %v", err)
	}

	bus := events.NewBus()
	fileStorage := storage.NewFileStorage(cfg.Storage.BasePath, cfg.Server.BaseURL)
	sessionRepo := database.NewSessionRepository()
	creditsRepo := database.NewCreditsRepository(db)

	rasterizer := render.NewRasterizer(storageResolver(fileStorage))

	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()

	editorService := service.NewEditorService(sessionRepo, fileStorage, rasterizer, bus)
	jobService := service.NewJobService(sessionRepo, jobRepo, creditsRepo, fileStorage, kafkaProducer, cfg.Kafka.Topic, cfg.Editor.EditCost, bus)
	creditsService := service.NewCreditsService(creditsRepo, bus)

	sessionHandler := transport.NewSessionHandler(editorService)
	jobHandler := transport.NewJobHandler(jobService, creditsService, cfg.Editor.EditCost)
	creditsHandler := transport.NewCreditsHandler(creditsService)
	storageHandler := transport.NewStorageHandler(fileStorage)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	janitor := worker.NewSessionJanitor(editorService, bus, cfg.Editor.JanitorInterval, cfg.Editor.SessionMaxIdle)
	go janitor.Start(ctx)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(sessionHandler, jobHandler, creditsHandler, storageHandler)); err != nil {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

}

// storageResolver lets the rasterizer load layer sources straight from the
// object store, accepting either bare keys or /view URLs it minted itself.
func storageResolver(files storage.Storage) render.ImageResolver {
	return func(src string) (image.Image, error) {
		reader, err := files.Get(keyFromSrc(src))
		if err != nil {
			return nil, err
		}
		defer reader.Close()

		img, _, err := image.Decode(reader)
		return img, err
	}
}

func keyFromSrc(src string) string {
	parsed, err := url.Parse(src)
	if err != nil {
		return src
	}
	if key := parsed.Query().Get("key"); key != "" {
		return key
	}
	return src
}
