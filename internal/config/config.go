package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	DB         DB         `yaml:"db"`
	Storage    Storage    `yaml:"storage"`
	Capture    Capture    `yaml:"capture"`
	HTTPServer HTTPServer `yaml:"http_server"`
}

type DB struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"data.db"`
}

// Storage points at an S3-compatible bucket (Cloudflare R2 in production).
// Credentials come from the environment only, never from the config file.
type Storage struct {
	Endpoint        string `yaml:"endpoint" env:"R2_ENDPOINT" env-required:"true"`
	AccessKeyID     string `yaml:"-" env:"R2_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"-" env:"R2_SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" env:"R2_BUCKET" env-default:"agaru-up-videos"`
	PublicURL       string `yaml:"public_url" env:"R2_PUBLIC_URL" env-default:"https://pub-fe496443fb104153b0da8cceaccc6aea.r2.dev"`
}

type Capture struct {
	HostSuffix  string        `yaml:"host_suffix" env-default:"easy-hacking.com"`
	ClipSeconds int           `yaml:"clip_seconds" env-default:"60"`
	Timeout     time.Duration `yaml:"timeout" env:"CAPTURE_TIMEOUT" env-default:"600s"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		panic("CONFIG_PATH is required")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}
