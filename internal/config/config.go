package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile   string    `yaml:"log-file" env:"LOG_FILE"`
	HTTPPort  string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Telegram  Telegram  `yaml:"telegram"`
	Bot       Bot       `yaml:"bot"`
	Redis     Redis     `yaml:"redis"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Telegram struct {
	Token       string `yaml:"token" env:"BOT_API_TOKEN"`
	PollTimeout int    `yaml:"poll-timeout" env-default:"3"`
	ChatQueue   int    `yaml:"chat-queue" env-default:"8"`
}

// Bot holds the bounds of the pause before the bot answers a move.
type Bot struct {
	ThinkMin time.Duration `yaml:"think-min" env-default:"300ms"`
	ThinkMax time.Duration `yaml:"think-max" env-default:"1200ms"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	LockTTL time.Duration `yaml:"lock-ttl" env-default:"30s"`
}

type Telemetry struct {
	MetricsFile string        `yaml:"metrics-file"`
	TracesFile  string        `yaml:"traces-file"`
	Interval    time.Duration `yaml:"interval" env-default:"10s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads config.yml and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
