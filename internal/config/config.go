package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultFile     = "config.json"
	DefaultDataDir  = "./quiz-data"
	DefaultLogLevel = "info"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	QuizURL string `mapstructure:"quizUrl"`
	Token   string `mapstructure:"token"`

	DataDir   string `mapstructure:"dataDir"`
	LogLevel  string `mapstructure:"logLevel"`
	LogFormat string `mapstructure:"logFormat"`

	// Optional Postgres DSN for the attempt history table.
	HistoryDSN string `mapstructure:"historyDsn"`

	StatusAddr   string `mapstructure:"statusAddr"`
	StatusSecret string `mapstructure:"statusSecret"`
}

// Load reads the JSON config file at path. Missing or empty quizUrl/token
// and an unreadable file are all reported as ErrInvalidConfig.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("dataDir", DefaultDataDir)
	v.SetDefault("logLevel", DefaultLogLevel)
	v.SetDefault("logFormat", "text")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.QuizURL) == "" {
		return fmt.Errorf("%w: empty quiz url", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidConfig)
	}
	if c.StatusAddr != "" && c.StatusSecret == "" {
		return fmt.Errorf("%w: statusSecret is required when statusAddr is set", ErrInvalidConfig)
	}
	return nil
}
