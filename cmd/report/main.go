package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/flexprice/tuition/internal/cache"
	"github.com/flexprice/tuition/internal/config"
	ierr "github.com/flexprice/tuition/internal/errors"
	"github.com/flexprice/tuition/internal/interfaces"
	"github.com/flexprice/tuition/internal/logger"
	"github.com/flexprice/tuition/internal/postgres"
	"github.com/flexprice/tuition/internal/repository"
	"github.com/flexprice/tuition/internal/service"
	"github.com/flexprice/tuition/internal/validator"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

func init() {
	time.Local = time.UTC
}

func main() {
	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(exitUsage)
	}

	var (
		engine interfaces.BillingEngine
		cfg    *config.Configuration
	)

	app := fx.New(
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return l.GetFxLogger()
		}),
		fx.Provide(
			validator.NewValidator,
			config.NewConfig,
			logger.NewLogger,
			provideCache,
			provideDB,
		),
		repository.Module,
		fx.Provide(
			service.NewServiceParams,
			service.NewSettingsService,
			service.NewBillingEngine,
		),
		fx.Populate(&engine, &cfg),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		writeError(err)
		os.Exit(exitCode(err))
	}

	ctx := context.Background()
	if cfg.Billing.ReportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Billing.ReportTimeout)
		defer cancel()
	}

	result, runErr := cmd.run(ctx, engine)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStop()
	_ = app.Stop(stopCtx)

	if runErr != nil {
		writeError(runErr)
		os.Exit(exitCode(runErr))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}
}

func provideCache(cfg *config.Configuration, log *logger.Logger) cache.Cache {
	return cache.NewInMemoryCache(cfg, log)
}

func provideDB(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (*postgres.DB, error) {
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			db.Close()
			return nil
		},
	})
	return db, nil
}

func writeError(err error) {
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(ierr.ToResponse(err))
}
