package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lborres/tanod"
	fiberadapter "github.com/lborres/tanod/adapters/fiber"
	"github.com/lborres/tanod/adapters/memory"
	pgxadapter "github.com/lborres/tanod/adapters/pgx"
	"github.com/lborres/tanod/core"
)

type config struct {
	Addr        string        `env:"ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"DATABASE_DSN"`
	Secret      string        `env:"AUTH_SECRET,required"`
	BasePath    string        `env:"BASE_PATH" envDefault:"/"`
	AccessTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	OTPTTL      time.Duration `env:"OTP_TTL" envDefault:"5m"`
	ExposeOTP   bool          `env:"EXPOSE_OTP" envDefault:"true"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	store, cleanup, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	_, err = tanod.New(tanod.Config{
		Secret:   cfg.Secret,
		Store:    store,
		HTTP:     fiberadapter.New(app),
		BasePath: cfg.BasePath,
		SessionConfig: &tanod.SessionConfig{
			AccessTTL:  cfg.AccessTTL,
			RefreshTTL: cfg.RefreshTTL,
		},
		OTPTTL:    cfg.OTPTTL,
		ExposeOTP: cfg.ExposeOTP,
	})
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- app.Listen(cfg.Addr)
	}()
	log.Info("listening", "addr", cfg.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// openStore picks Postgres when a DSN is configured and the in-memory
// store otherwise. The memory store loses all users on restart.
func openStore(ctx context.Context, cfg config, log *slog.Logger) (core.UserStore, func(), error) {
	if cfg.DatabaseDSN == "" {
		log.Warn("no DATABASE_DSN set, using in-memory store")
		return memory.New(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	if err := pgxadapter.RunMigrations(ctx, cfg.DatabaseDSN); err != nil {
		pool.Close()
		return nil, nil, err
	}

	log.Info("connected to postgres")
	return pgxadapter.New(pool), pool.Close, nil
}
