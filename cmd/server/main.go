package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hex-settlers/internal/server"
	"hex-settlers/pkg/maps"
)

func main() {
	_ = godotenv.Load()
	setupLogging()

	port := flag.String("port", "30000", "Server port")
	dbPath := flag.String("db", "data/hexsettlers.db", "Database path")
	flag.Parse()

	// Use PORT env var if set (required for Render.com and similar platforms)
	actualPort := *port
	if envPort := os.Getenv("PORT"); envPort != "" {
		actualPort = envPort
		log.Info().Str("port", actualPort).Msg("using PORT from environment")
	}

	// Use DB_PATH env var if set, for cloud deployments with persistent disks
	actualDBPath := *dbPath
	if envDBPath := os.Getenv("DB_PATH"); envDBPath != "" {
		actualDBPath = envDBPath
		log.Info().Str("db", actualDBPath).Msg("using DB_PATH from environment")
	}

	if err := maps.LoadAll(); err != nil {
		log.Fatal().Err(err).Msg("failed to load preset boards")
	}

	cfg := server.Config{
		Addr:        ":" + actualPort,
		DBPath:      actualDBPath,
		JWTSecret:   jwtSecret(),
		AIStepDelay: envDuration("AI_STEP_DELAY", 0),
		Seed:        envUint("SEED"),
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	// Handle shutdown gracefully
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("server error")
			done <- syscall.SIGTERM
		}
	}()

	<-done
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server stopped")
}

func setupLogging() {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// jwtSecret returns JWT_SECRET, or a per-process secret that invalidates
// every session on restart.
func jwtSecret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("failed to generate session secret")
	}
	log.Warn().Msg("JWT_SECRET not set, sessions will not survive a restart")
	return hex.EncodeToString(buf)
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Err(err).Str("key", k).Msg("ignoring bad duration")
		return def
	}
	return d
}

func envUint(k string) uint64 {
	v := os.Getenv(k)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		log.Warn().Err(err).Str("key", k).Msg("ignoring bad number")
		return 0
	}
	return n
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
