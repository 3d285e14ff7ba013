package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

type Auth struct {
	// TokenTTL bounds the lifetime of login-issued tokens.
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"30m"`
	// JWTSecret, when empty, is replaced by a random key generated at startup.
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

// MustLoadConfig reads configPath when given, else falls back to environment
// variables only.
func MustLoadConfig(configPath string) *Config {
	if configPath == "" {
		config, err := loadFromEnv()
		if err != nil {
			panic(fmt.Sprintf("failed to load config from env: %v", err))
		}
		return config
	}

	if _, err := os.Stat(configPath); err != nil {
		panic("config file not found")
	}

	config, err := loadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

func loadConfig(path string) (*Config, error) {
	var config Config

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func loadFromEnv() (*Config, error) {
	var config Config

	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
