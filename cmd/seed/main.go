package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"local_mart/config"
	"local_mart/database"
	"local_mart/database/seed"
)

func main() {
	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	config.Flags(fs)
	file := fs.String("file", "cmd/seed/seed.example.yaml", "YAML file with categories, delivery areas and promo codes")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		logrus.Fatalf("Failed to load config with error: %+v", err)
	}
	if err := config.ConfigureLogger(cfg.Log); err != nil {
		logrus.Fatalf("Failed to configure logger with error: %+v", err)
	}

	in, err := os.Open(*file)
	if err != nil {
		logrus.Fatalf("Failed to open seed file with error: %+v", err)
	}
	defer in.Close()

	data, err := seed.Parse(in)
	if err != nil {
		logrus.Fatalf("Failed to parse seed file with error: %+v", err)
	}

	db, err := database.ConnectAndMigrate(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize and migrate database with error: %+v", err)
	}
	defer database.CloseDb(db)

	if err := seed.Apply(context.Background(), db, data); err != nil {
		logrus.Errorf("Failed to apply seed file with error: %+v", err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"categories":     len(data.Categories),
		"delivery_areas": len(data.DeliveryAreas),
		"promo_codes":    len(data.PromoCodes),
	}).Info("seed applied")
}
