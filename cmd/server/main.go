package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/adapters/event"
	httpAdapter "github.com/khoahotran/profile-directory/adapters/http"
	"github.com/khoahotran/profile-directory/adapters/persistence"
	profileUC "github.com/khoahotran/profile-directory/internal/application/usecase/profile"
	projectUC "github.com/khoahotran/profile-directory/internal/application/usecase/project"
	searchUC "github.com/khoahotran/profile-directory/internal/application/usecase/search"
	"github.com/khoahotran/profile-directory/internal/config"
	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Redis and Kafka are optional collaborators; the service runs
	// without them when their config is absent.
	var profileCache profile.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		profileCache = persistence.NewRedisProfileCache(redisClient, cfg.Redis.CacheTTL, appLogger)
	} else {
		appLogger.Warn("REDIS_ADDR not set, profile cache disabled")
	}

	var kafkaClient *event.KafkaProducerClient
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err = event.NewKafkaProducerClient(cfg)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		appLogger.Info("Initialize Kafka Producers successfully.")
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, profile events disabled")
	}

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, profileCache, kafkaClient, appLogger)
	searchUseCase := searchUC.NewSearchUseCase(profileRepo)
	listProjectsUseCase := projectUC.NewListProjectsUseCase(profileRepo)

	// HTTP Handlers
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase, appLogger)
	searchHandler := httpAdapter.NewSearchHandler(searchUseCase, appLogger)
	projectHandler := httpAdapter.NewProjectHandler(listProjectsUseCase, appLogger)

	router := httpAdapter.NewRouter(profileHandler, searchHandler, projectHandler)

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
