package main

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	rates "github.com/malusev998/privatbank-rates"
	"github.com/malusev998/privatbank-rates/fetchers"
	"github.com/malusev998/privatbank-rates/storage"
)

type (
	StorageConfig map[storage.Provider]interface{}
	Config        struct {
		Provider      rates.Provider
		API           fetchers.PrivatBankConfig
		Storage       []storage.Provider
		StorageConfig StorageConfig
	}
)

func setDefaults() {
	viper.SetDefault("api.provider", rates.PrivatBankProvider.String())
	viper.SetDefault("api.url", fetchers.PrivatBankURL)
	viper.SetDefault("api.timeout", 10*time.Second)
	viper.SetDefault("api.concurrency", fetchers.DefaultMaxConcurrency)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("storage", []string{})
	viper.SetDefault("migrate", false)
	viper.SetDefault("databases.mysql.table", "exchange_rates")
	viper.SetDefault("databases.mongo.db", "privatbank")
	viper.SetDefault("databases.mongo.collection", "exchange_rates")
}

func getMysqlDSN(config map[string]string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config["user"]
	mysqlDriverConfig.Passwd = config["password"]
	mysqlDriverConfig.Addr = config["addr"]
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config["db"]
	mysqlDriverConfig.ParseTime = true

	return mysqlDriverConfig.FormatDSN()
}

func getConfig() (*Config, error) {
	mysqlConfig := map[string]string{
		"user":     viper.GetString("databases.mysql.user"),
		"password": viper.GetString("databases.mysql.password"),
		"addr":     viper.GetString("databases.mysql.addr"),
		"db":       viper.GetString("databases.mysql.db"),
	}

	timeout := viper.GetDuration("api.timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("api.timeout must be positive, got %s", viper.GetString("api.timeout"))
	}

	provider, err := rates.ConvertToProviderFromString(viper.GetString("api.provider"))
	if err != nil {
		return nil, err
	}

	storages, err := storage.ConvertToProvidersFromStringSlice(viper.GetStringSlice("storage"))
	if err != nil {
		return nil, err
	}

	storageBaseConfig := storage.BaseConfig{
		Migrate: viper.GetBool("migrate"),
	}

	return &Config{
		Provider: provider,
		API: fetchers.PrivatBankConfig{
			BaseConfig: fetchers.BaseConfig{
				URL:     viper.GetString("api.url"),
				Timeout: timeout,
			},
			MaxConcurrency: viper.GetInt("api.concurrency"),
		},
		Storage: storages,
		StorageConfig: StorageConfig{
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: getMysqlDSN(mysqlConfig),
				TableName:        viper.GetString("databases.mysql.table"),
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: viper.GetString("databases.mongo.uri"),
				Database:         viper.GetString("databases.mongo.db"),
				Collection:       viper.GetString("databases.mongo.collection"),
			},
		},
	}, nil
}
