// Package config загружает настройки bh из переменных окружения.
//
// Настройки разделены на две части: Runtime нужен всегда (логи,
// метрики, трейсинг), API — только командам, которые ходят в
// BountyHub. Поэтому `bh md docs` и `bh completion` работают без токена.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// TokenPrefix — префикс personal access token BountyHub.
const TokenPrefix = "bhv"

// Ошибки конфигурации.
var (
	ErrMissingToken = errors.New("BOUNTYHUB_TOKEN is not set")
	ErrInvalidToken = errors.New("invalid token format: token does not start with " + TokenPrefix)
)

// Runtime — настройки окружения процесса.
type Runtime struct {
	LogLevel     string `env:"LOG_LEVEL,default=INFO"`
	LogFormat    string `env:"LOG_FORMAT"`
	MetricsFile  string `env:"BOUNTYHUB_METRICS_FILE"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// API — настройки доступа к BountyHub.
type API struct {
	Token string `env:"BOUNTYHUB_TOKEN,required"`
	URL   string `env:"BOUNTYHUB_URL,default=https://bountyhub.org"`
}

// LoadDotEnv читает .env из рабочей директории, если он есть.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadRuntime возвращает Runtime из переменных окружения.
func LoadRuntime(ctx context.Context) (Runtime, error) {
	return LoadRuntimeWith(ctx, envconfig.OsLookuper())
}

// LoadRuntimeWith возвращает Runtime из произвольного источника.
func LoadRuntimeWith(ctx context.Context, lookuper envconfig.Lookuper) (Runtime, error) {
	var cfg Runtime
	if err := process(ctx, &cfg, lookuper); err != nil {
		return Runtime{}, err
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	return cfg, nil
}

// LoadAPI возвращает API из переменных окружения.
func LoadAPI(ctx context.Context) (API, error) {
	return LoadAPIWith(ctx, envconfig.OsLookuper())
}

// LoadAPIWith возвращает API из произвольного источника
// и проверяет формат токена.
func LoadAPIWith(ctx context.Context, lookuper envconfig.Lookuper) (API, error) {
	var cfg API
	if err := process(ctx, &cfg, lookuper); err != nil {
		if errors.Is(err, envconfig.ErrMissingRequired) {
			return API{}, ErrMissingToken
		}
		return API{}, err
	}

	if err := ValidateToken(cfg.Token); err != nil {
		return API{}, err
	}
	cfg.URL = strings.TrimRight(cfg.URL, "/")
	return cfg, nil
}

// ValidateToken проверяет префикс токена.
func ValidateToken(token string) error {
	if token == "" {
		return ErrMissingToken
	}
	if !strings.HasPrefix(token, TokenPrefix) {
		return ErrInvalidToken
	}
	return nil
}

func process(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	return envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	})
}
