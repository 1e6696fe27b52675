package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration file. Every field has an
// environment override so container deployments need no file at all.
type Config struct {
	Port    int    `yaml:"port"`
	Dataset string `yaml:"dataset"`

	Auth struct {
		Secret        string        `yaml:"secret"`
		TokenDuration time.Duration `yaml:"tokenDuration"`
	} `yaml:"auth"`

	Trace struct {
		MaxDepth        int     `yaml:"maxDepth"`
		WeightThreshold float64 `yaml:"weightThreshold"`
	} `yaml:"trace"`

	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`

	S3 struct {
		Bucket    string `yaml:"bucket"`
		Key       string `yaml:"key"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
	} `yaml:"s3"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	cfg.Port = 8080
	cfg.Auth.TokenDuration = 24 * time.Hour

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("CHAINSIGHT_DATASET"); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv("CHAINSIGHT_AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("CHAINSIGHT_POSTGRES_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("CHAINSIGHT_S3_BUCKET"); v != "" {
		cfg.S3.Bucket = v
	}
	if v := os.Getenv("CHAINSIGHT_S3_KEY"); v != "" {
		cfg.S3.Key = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" && cfg.S3.Region == "" {
		cfg.S3.Region = v
	}
}
