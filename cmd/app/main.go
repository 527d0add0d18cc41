package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moving/cmd"
	"moving/internal/adapters/out/postgres"
	"moving/internal/core/application/usecases/commands"
	"moving/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echo_log "github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		logger.New("moving", "error").Error("loading config", logger.Error(err))
		os.Exit(1)
	}
	log := logger.New("moving", configs.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := run(configs, log); err != nil {
		log.Error("shutting down", logger.Error(err))
		os.Exit(1)
	}
}

func run(configs cmd.Config, log logger.ILogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = postgres.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, log)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	if err = ensureAdmins(ctx, app, configs.AdminPhones); err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, configs, log)
}

func ensureAdmins(ctx context.Context, app *cmd.CompositionRoot, phones []string) error {
	if len(phones) == 0 {
		return nil
	}
	command, err := commands.NewEnsureAdminsCommand(phones)
	if err != nil {
		return fmt.Errorf("ADMIN_PHONES: %w", err)
	}
	_, err = app.CreateEnsureAdminsCommandHandler().Handle(ctx, command)
	return err
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, log logger.ILogger) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if err := app.CreateHTTPServer().Register(ctx, e); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", logger.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// echoLogLevel maps LOG_LEVEL onto echo's own logger, which only reports
// startup and internal server errors.
func echoLogLevel(level string) echo_log.Lvl {
	switch level {
	case "debug":
		return echo_log.DEBUG
	case "info":
		return echo_log.INFO
	case "warn", "warning":
		return echo_log.WARN
	}
	return echo_log.ERROR
}
