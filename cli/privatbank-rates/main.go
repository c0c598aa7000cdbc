package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/malusev998/privatbank-rates/cli/cmd"
)

func main() {
	logrus.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logrus.WithError(err).Warn("error while loading .env file")
	}

	setDefaults()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := &cmd.Config{
		Ctx:               ctx,
		DefaultCurrencies: cmd.DefaultCurrencies,
		MaxDays:           cmd.DefaultMaxDays,
		NewService:        newService,
	}

	if err := cmd.Execute(config); err != nil {
		logrus.Error(err)
		stop()
		os.Exit(1)
	}
}
