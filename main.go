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

	"minitwit/config"
	"minitwit/database"
	"minitwit/handlers"
	"minitwit/logger"
	"minitwit/repositories"
	"minitwit/routes"
	"minitwit/services"
	"minitwit/session"
	"minitwit/templates"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "minitwit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envFile := pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
	addr := pflag.String("addr", "", "listen address (defaults to :$PORT)")
	initDB := pflag.Bool("init-db", false, "create the database schema and exit")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	logger.InitLogger(cfg.LogLevel, cfg.LogFile)

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	if *initDB {
		logrus.Info("Database initialized")
		return nil
	}

	views, err := templates.New()
	if err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db.DB)
	messageRepo := repositories.NewMessageRepository(db.DB)

	h := handlers.NewHandler(
		services.NewAuthService(userRepo, services.BcryptHasher{Cost: cfg.BcryptCost}),
		services.NewTimelineService(userRepo, messageRepo, cfg.PerPage),
		services.NewSocialService(userRepo),
		services.NewMessageService(messageRepo),
		session.NewStore([]byte(cfg.SecretKey)),
		views,
	)

	if *addr == "" {
		*addr = ":" + cfg.Port
	}
	srv := &http.Server{
		Addr:              *addr,
		Handler:           routes.SetupRoutes(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
