package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	rates "github.com/malusev998/privatbank-rates"
	"github.com/malusev998/privatbank-rates/fetchers"
	"github.com/malusev998/privatbank-rates/services"
	"github.com/malusev998/privatbank-rates/storage"
)

func closeStorages(storages []rates.Storage) {
	for _, st := range storages {
		if err := st.Close(); err != nil {
			logrus.WithError(err).Warnf("error while closing %s storage", st.GetStorageProviderName())
			continue
		}

		logrus.Debugf("disconnected from %s", st.GetStorageProviderName())
	}
}

func createStorages(ctx context.Context, config *Config) ([]rates.Storage, error) {
	storages := make([]rates.Storage, 0, len(config.Storage))
	for _, s := range config.Storage {
		c, ok := config.StorageConfig[s]
		if !ok {
			closeStorages(storages)
			return nil, fmt.Errorf("storage %s does not exist", s)
		}

		st, err := storage.NewStorage(ctx, s, c)
		if err != nil {
			closeStorages(storages)
			return nil, fmt.Errorf("error while connecting to %s: %w", s, err)
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func newService(ctx context.Context) (rates.Service, func(), error) {
	config, err := getConfig()
	if err != nil {
		return nil, nil, err
	}

	config.API.Logger = logrus.StandardLogger()

	fetcher, err := fetchers.NewCurrencyFetcher(config.Provider, config.API)
	if err != nil {
		return nil, nil, err
	}

	storages, err := createStorages(ctx, config)
	if err != nil {
		return nil, nil, err
	}

	service := services.Service{
		Fetcher: fetcher,
		Storage: storages,
		Logger:  logrus.StandardLogger(),
	}

	return service, func() { closeStorages(storages) }, nil
}
