package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Provider struct {
		// Type selects the language model provider: "local", "openai" or
		// "gemini".
		Type         string `mapstructure:"type"`
		Model        string `mapstructure:"model"`
		OpenaiApiKey string `mapstructure:"openai_api_key"`
		GoogleApiKey string `mapstructure:"google_api_key"`
	} `mapstructure:"provider"`

	Language struct {
		// Hints are prior-probability boosts per language code.
		Hints map[string]float64 `mapstructure:"hints"`
		// Constraints restricts recognition to the listed languages.
		Constraints   []string `mapstructure:"constraints"`
		MaxHypotheses int      `mapstructure:"max_hypotheses"`
	} `mapstructure:"language"`

	Assets struct {
		// CatalogPath is the sqlite asset catalog; empty means in-memory.
		CatalogPath string `mapstructure:"catalog_path"`
		// FetchDelayMs simulates model download time for the local provider.
		FetchDelayMs int `mapstructure:"fetch_delay_ms"`
		// Preinstall seeds the catalog with every scheme for the listed
		// languages at startup.
		Preinstall []string `mapstructure:"preinstall"`
	} `mapstructure:"assets"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Serve struct {
		Addr string `mapstructure:"addr"`
		Port string `mapstructure:"port"`
	} `mapstructure:"serve"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	// API keys are usually supplied through the conventional env vars rather
	// than the config file.
	viper.BindEnv("provider.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("provider.google_api_key", "GEMINI_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars carry the run.
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults() {
	viper.SetDefault("provider.type", "local")
	viper.SetDefault("language.max_hypotheses", 3)
	viper.SetDefault("assets.preinstall", []string{"en"})
	viper.SetDefault("redis.address", "localhost:6379")
	viper.SetDefault("worker.concurrency", 4)
	viper.SetDefault("worker.queues", map[string]int{"default": 1})
	viper.SetDefault("serve.addr", "localhost")
	viper.SetDefault("serve.port", "8080")
}
