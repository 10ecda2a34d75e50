package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sv/mcp-paradex-go/pkg/paradex"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Paradex ParadexConfig `mapstructure:"paradex"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ServerConfig struct {
	Name      string `mapstructure:"name"`
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

type ParadexConfig struct {
	Environment       string  `mapstructure:"environment"`
	AccountAddress    string  `mapstructure:"account_address"`
	PrivateKeyPEM     string  `mapstructure:"private_key_pem"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Authenticated reports whether a signing credential is configured.
func (p ParadexConfig) Authenticated() bool {
	return p.AccountAddress != "" && p.PrivateKeyPEM != ""
}

// Env maps the configured environment name onto an API environment.
func (p ParadexConfig) Env() (paradex.Environment, error) {
	switch p.Environment {
	case "", "testnet":
		return paradex.EnvTestnet, nil
	case "prod", "mainnet":
		return paradex.EnvProd, nil
	}
	return "", fmt.Errorf("unknown environment %q, want testnet or prod", p.Environment)
}

func Load(configPath string) (*Config, error) {
	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/paradex-mcp")
	}

	v.SetEnvPrefix("PARADEX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults and environment
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&config)

	if _, err := config.Paradex.Env(); err != nil {
		return nil, err
	}
	if config.Paradex.PrivateKeyPEM != "" && config.Paradex.AccountAddress == "" {
		return nil, fmt.Errorf("paradex.account_address is required when a private key is configured")
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "paradex-mcp")
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.port", 8000)

	v.SetDefault("paradex.environment", "testnet")
	v.SetDefault("paradex.requests_per_second", 8.0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
}

func overrideFromEnv(config *Config) {
	if env := os.Getenv("PARADEX_ENVIRONMENT"); env != "" {
		config.Paradex.Environment = env
	}
	if account := os.Getenv("PARADEX_ACCOUNT_ADDRESS"); account != "" {
		config.Paradex.AccountAddress = account
	}
	if key := os.Getenv("PARADEX_PRIVATE_KEY"); key != "" {
		config.Paradex.PrivateKeyPEM = key
	}
	if transport := os.Getenv("PARADEX_TRANSPORT"); transport != "" {
		config.Server.Transport = transport
	}
}
