package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	api "github.com/p-miano/portfolio-api/api"
	"github.com/p-miano/portfolio-api/auth"
	"github.com/p-miano/portfolio-api/config"
	"github.com/p-miano/portfolio-api/database"
	"github.com/p-miano/portfolio-api/models"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	env := config.New()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg)

	if err := run(cfg, env); err != nil {
		log.Fatal().Err(err).Msg("portfolio api stopped")
	}
}

func setupLogging(cfg config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
}

func run(cfg config.AppConfig, env map[string]string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("environment", cfg.Environment).Str("dbType", cfg.DBType).Msg("Initializing app...")

	gormDB, err := database.Open(cfg)
	if err != nil {
		return err
	}
	currentDB := database.New(gormDB)
	defer func() {
		if err := currentDB.Close(); err != nil {
			log.Warn().Err(err).Msg("closing database")
		}
	}()

	// If generating models, run generation and exit
	if cfg.GenerateOnly {
		log.Info().Msg("Generating models and query helpers...")
		return models.GenerateModels(gormDB, config.GetString(env, "GENERATE_OUT_PATH", ""))
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(env, "GENERATE_COLUMN_REPORT", false) {
		report, err := models.ColumnMismatchReport(gormDB)
		if err != nil {
			return err
		}
		models.LogColumnMismatchReport(report)
		return nil
	}

	if err := currentDB.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if cfg.SeedData {
		if err := currentDB.SeedReferenceData(ctx); err != nil {
			return fmt.Errorf("seed reference data: %w", err)
		}
	}

	if cfg.JWTSecret == "" && cfg.JWTSecretSSMParam != "" {
		client, err := config.NewSSMClient(ctx, config.GetString(env, "AWS_REGION", ""))
		if err != nil {
			return err
		}
		if err := cfg.ResolveJWTSecret(ctx, client); err != nil {
			return err
		}
	} else if err := cfg.ValidateSecret(); err != nil {
		return err
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		return err
	}

	server, err := api.NewServer(cfg, currentDB, tokens)
	if err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		server.ShutdownGracefully(shutdownTimeout)
		return nil
	})

	return g.Wait()
}
