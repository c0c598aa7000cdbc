package fetchers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	rates "github.com/malusev998/privatbank-rates"
)

type (
	BaseConfig struct {
		URL     string
		Timeout time.Duration
		Logger  logrus.FieldLogger
	}
	PrivatBankConfig struct {
		BaseConfig
		MaxConcurrency int
		Client         *http.Client
	}
)

func NewCurrencyFetcher(provider rates.Provider, config interface{}) (rates.Fetcher, error) {
	switch provider {
	case rates.PrivatBankProvider:
		c, ok := config.(PrivatBankConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config %T for fetcher %s", config, provider)
		}

		return PrivatBankFetcher{
			URL:            c.URL,
			Timeout:        c.Timeout,
			MaxConcurrency: c.MaxConcurrency,
			Client:         c.Client,
			Logger:         c.Logger,
		}, nil
	}

	return nil, fmt.Errorf("fetcher %s does not exist", provider)
}
