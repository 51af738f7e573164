// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	DBDriver       string `mapstructure:"DB_DRIVER"`
	DBSource       string `mapstructure:"DB_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	Environement   string `mapstructure:"GO_ENV"`
	MigrateOnStart bool   `mapstructure:"MIGRATE_ON_START"`
	EventsBroker   string `mapstructure:"EVENTS_BROKER"`
	EventsTopic    string `mapstructure:"EVENTS_TOPIC"`
	NATSURL        string `mapstructure:"NATS_URL"`
	KafkaBrokers   string `mapstructure:"KAFKA_BROKERS"`
}

// KafkaBrokerList splits the comma separated KAFKA_BROKERS value.
func (c Config) KafkaBrokerList() []string {
	var brokers []string

	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return brokers
}

// Load read configuration from file or environment variables.
//
// A .env file next to app.env, if present, is loaded into the environment first
// so it can override app.env values locally.
func Load(path string) (Config, error) {
	var c Config

	err := godotenv.Load(filepath.Join(path, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, err
	}

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("EVENTS_BROKER", "none")
	v.SetDefault("EVENTS_TOPIC", "ledger.transactions")

	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
