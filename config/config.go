package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "ASSISTANT_CONFIG_FILE"

type payment struct {
	BaseURL   string        `mapstructure:"base_url"`
	KeyID     string        `mapstructure:"key_id"`
	KeySecret string        `mapstructure:"key_secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type broker struct {
	SeedBrokers       []string `mapstructure:"seed_brokers"`
	ClientEventsTopic string   `mapstructure:"client_events_topic"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	RedisAddr      string     `mapstructure:"redis_addr"`
	Payment        payment    `mapstructure:"payment"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	template := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	RedisAddr=%q

	Payment:
	BaseURL=%q
	KeyID=%q
	Timeout=%q

	Broker:
	SeedBrokers=%q
	ClientEventsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.RedisAddr,
		c.Payment.BaseURL,
		c.Payment.KeyID,
		c.Payment.Timeout,
		c.Broker.SeedBrokers,
		c.Broker.ClientEventsTopic,
	)
}
