package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/aladhan"
	"github.com/miqat-labs/minaret/internal/broadcast"
	"github.com/miqat-labs/minaret/internal/db"
	"github.com/miqat-labs/minaret/internal/redis"
	"github.com/miqat-labs/minaret/internal/timetable"
	"github.com/miqat-labs/minaret/internal/watch"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on process environment")
	}

	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	store := db.NewStore(db.DB)

	var cache timetable.Cache
	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
		cache = redis.NewCache()
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set, timetable hot cache disabled")
	}

	client := aladhan.NewClient(env.AladhanBaseURL, env.AladhanTimeout)
	times := timetable.NewService(store, cache, client)

	var publisher broadcast.Publisher = broadcast.Noop{}
	if env.MQTTBrokerURL != "" {
		mqttPub, err := broadcast.NewMQTTPublisher(env.MQTTBrokerURL, "minaret-server")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect MQTT publisher")
		}
		defer mqttPub.Close()
		publisher = mqttPub
	} else {
		log.Warn().Msg("MQTT_BROKER_URL not set, boards must poll the HTTP feed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	supervisor := watch.NewSupervisor(store, times, publisher)
	go supervisor.Run(ctx)

	router := gin.Default()
	RegisterRoutes(router, env, store, times)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := router.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
