package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/db"
	"github.com/castell-digital/marquee/internal/liveness"
	"github.com/castell-digital/marquee/internal/push"
	"github.com/castell-digital/marquee/internal/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	conn, err := db.Init(env.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if env.MigrationsPath != "" {
		if err := db.RunMigrations(conn, env.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("db migrate failed")
		}
	}
	store := db.NewStore(conn)

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	if env.MQTTBrokerURL != "" {
		if err := push.Init(env.MQTTBrokerURL, env.MQTTClientID); err != nil {
			log.Error().Err(err).Msg("mqtt init failed, push notifications disabled")
		}
		defer push.Shutdown()
	}

	storageSystem := InitStorage(env)
	tracker := liveness.NewTracker(store, redis.Rdb)

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, tracker)

	log.Info().Str("address", env.ServerAddress).Msg("server listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
