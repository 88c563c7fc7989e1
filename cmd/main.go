package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"local_mart/config"
	"local_mart/database"
	"local_mart/database/handler"
	"local_mart/identity"
	"local_mart/middleware"
	"local_mart/server"
	"local_mart/service"
)

func newIdentityProvider(ctx context.Context, cfg config.AuthConfig) (identity.Provider, error) {
	if cfg.Provider == config.AuthProviderFirebase {
		return identity.NewFirebaseProvider(ctx, cfg.FirebaseCredentialsFile)
	}
	return identity.NewJWTProvider(cfg.JWTSecret), nil
}

func main() {
	fs := pflag.NewFlagSet("local_mart", pflag.ExitOnError)
	config.Flags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		logrus.Fatalf("Failed to load config with error: %+v", err)
	}
	if err := config.ConfigureLogger(cfg.Log); err != nil {
		logrus.Fatalf("Failed to configure logger with error: %+v", err)
	}

	db, err := database.ConnectAndMigrate(cfg.Database)
	if err != nil {
		logrus.Panicf("Failed to initialize and migrate database with error: %+v", err)
	}
	defer database.CloseDb(db)
	logrus.Info("migration successfully!!")

	provider, err := newIdentityProvider(context.Background(), cfg.Auth)
	if err != nil {
		logrus.Errorf("Identity provider creation failed; %s", err.Error())
		return
	}

	areas := service.AreaTable{}
	users := service.NewUserService(db)
	h := &handler.Handler{
		Identity:   provider,
		Users:      users,
		Cart:       service.NewCartService(db),
		Orders:     service.NewOrderService(db, areas, service.ShortIDNumbers{Prefix: cfg.Order.NumberPrefix}, cfg.Order.DeliveryWindow),
		Onboarding: service.NewOnboardingService(db),
		Catalog:    service.NewCatalogService(db),
		Reviews:    service.NewReviewService(db, cfg.Review.MaxRating),
		Areas:      service.NewDeliveryAreaService(db, areas),
		Auth:       cfg.Auth,
	}
	srv := server.SetupRoutes(h, middleware.NewAuthenticator(provider, users, cfg.Auth.SessionCookie))

	go func() {
		logrus.Infof("Server started at :%s", cfg.Server.Port)
		if err := srv.Run(cfg.Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to run server with error %+v", err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	logrus.Info("shutting down server")
	if err := srv.Stop(cfg.Server.ShutdownTimeout); err != nil {
		logrus.Errorf("Failed to gracefully shutdown server with error %+v", err)
	}
}
