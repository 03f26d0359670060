package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	amqp "github.com/rabbitmq/amqp091-go"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/shenikar/zone_proximity/internal/config"
	"github.com/shenikar/zone_proximity/internal/dispatcher"
	v1 "github.com/shenikar/zone_proximity/internal/handler/http/v1"
	"github.com/shenikar/zone_proximity/internal/ingest"
	"github.com/shenikar/zone_proximity/internal/publisher"
	"github.com/shenikar/zone_proximity/internal/repository"
	"github.com/shenikar/zone_proximity/internal/service"
	"github.com/shenikar/zone_proximity/internal/webhook"
	influxclient "github.com/shenikar/zone_proximity/pkg/influx"
	"github.com/shenikar/zone_proximity/pkg/logger"
	mqttclient "github.com/shenikar/zone_proximity/pkg/mqtt"
	"github.com/shenikar/zone_proximity/pkg/postgres"
	"github.com/shenikar/zone_proximity/pkg/rabbitmq"
	redisclient "github.com/shenikar/zone_proximity/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/zone_proximity/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Zone Proximity API
// @version 1.0
// @description Tracks proximity of location sources to a monitored zone.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации; ошибка настроек близости фатальна
	cfg, err := config.LoadConfig()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			logrus.WithField("field", cfgErr.Field).Fatalf("Invalid proximity configuration: %v", err)
		}
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)
	log.WithFields(logrus.Fields{
		"zone":      cfg.Proximity.Zone,
		"devices":   len(cfg.Proximity.Devices),
		"overrides": cfg.Proximity.Overrides.Names(),
		"tolerance": cfg.Proximity.Tolerance,
	}).Info("Proximity configuration loaded")

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Получатели результатов: очередь вебхуков есть всегда, остальные по настройкам
	results := publisher.NewMultiPublisher(log, publisher.Sink{
		Name:      "webhook",
		Publisher: webhook.NewRedisWebhookPublisher(redisClient),
	})

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Подписчик появляется после запуска диспетчера, до этого переподключения ничего не делают
	topics := mqttclient.Topics{Prefix: cfg.MQTTTopicPrefix}
	var subscriber atomic.Pointer[ingest.Subscriber]
	var mqttClient pahomqtt.Client
	if cfg.MQTTBroker != "" {
		mqttClient, err = mqttclient.NewMQTTClient(mqttclient.Options{
			Broker:   cfg.MQTTBroker,
			ClientID: cfg.MQTTClientID,
			Username: cfg.MQTTUsername,
			Password: cfg.MQTTPassword,
			OnConnect: func(client pahomqtt.Client) {
				if sub := subscriber.Load(); sub != nil {
					sub.OnConnect(client)
				}
			},
		})
		if err != nil {
			log.Fatalf("Failed to connect to MQTT broker: %v", err)
		}
		defer mqttclient.Close(mqttClient)
		results.Add("mqtt", publisher.NewMQTTPublisher(mqttClient, topics, cfg.MQTTQoS))
		log.WithField("broker", cfg.MQTTBroker).Info("Successfully connected to MQTT broker")
	}

	var rabbitConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		rabbitConn, err = rabbitmq.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbitConn.Close()

		rabbitPublisher, err := publisher.NewRabbitPublisher(rabbitConn)
		if err != nil {
			log.Fatalf("Failed to set up RabbitMQ publisher: %v", err)
		}
		results.Add("rabbitmq", rabbitPublisher)
		log.Info("Successfully connected to RabbitMQ")
	}

	var influx influxdb2.Client
	if cfg.InfluxURL != "" {
		influx, err = influxclient.NewInfluxClient(ctx, cfg.InfluxURL, cfg.InfluxToken)
		if err != nil {
			log.Fatalf("Failed to connect to InfluxDB: %v", err)
		}
		defer influx.Close()

		writeAPI := influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket)
		go func() {
			for err := range writeAPI.Errors() {
				log.WithError(err).Warn("InfluxDB write failed")
			}
		}()
		results.Add("influxdb", publisher.NewInfluxPublisher(writeAPI))
		log.Info("Successfully connected to InfluxDB")
	}
	log.WithField("sinks", results.Sinks()).Info("Result publishers configured")

	// Инициализация репозиториев
	stateRepo := repository.NewSourceStateRepository(redisClient)
	zoneRepo := repository.NewZoneRepository(dbpool)
	resultRepo := repository.NewResultRepository(dbpool, redisClient)

	// Инициализация сервисов
	proximityService := service.NewProximityService(stateRepo, zoneRepo, resultRepo, results, cfg.Proximity, log)
	if err := proximityService.InitResult(ctx); err != nil {
		log.WithError(err).Error("Failed to publish initial proximity result")
	}

	// Очередь событий: обрабатывается по одному событию за раз
	updates := dispatcher.New(proximityService, log, cfg.EventBuffer)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		updates.Run(ctx)
	}()
	if mqttClient != nil {
		sub := ingest.NewSubscriber(topics, cfg.MQTTQoS, cfg.Proximity.Devices, updates, log)
		subscriber.Store(sub)
		if err := sub.Subscribe(mqttClient); err != nil {
			log.Fatalf("Failed to subscribe to source state topics: %v", err)
		}
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(proximityService, updates, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	cancel()
	select {
	case <-dispatcherDone:
	case <-shutdownCtx.Done():
		log.Warn("Update dispatcher did not stop in time")
	}

	log.Info("Server gracefully stopped")
}
