package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info" validate:"oneof=trace debug info warn warning error"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	API     APIConfig
	Console ConsoleConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type APIConfig struct {
	BaseURL       string        `env:"OA_API_BASE_URL,   default=http://localhost:8000/api" validate:"required,url"`
	HealthPath    string        `env:"OA_HEALTH_PATH,    default=/workspace/meetingRoom"    validate:"required,startswith=/"`
	FallbackDelay time.Duration `env:"OA_FALLBACK_DELAY, default=600ms"                     validate:"gte=0"`
	Timeout       time.Duration `env:"OA_HTTP_TIMEOUT,   default=0s"                        validate:"gte=0"`
	Origin        string        `env:"OA_ORIGIN"                                             validate:"omitempty,url"`
}

type ConsoleConfig struct {
	Addr string `env:"CONSOLE_ADDR, default=127.0.0.1:8787" validate:"required,hostname_port"`
}

type StorageConfig struct {
	Driver    string `env:"STORAGE_DRIVER,    default=file"                     validate:"oneof=file memory redis mongo"`
	Path      string `env:"STORAGE_PATH,      default=~/.oaclient/storage.json" validate:"required_if=Driver file"`
	Secret    string `env:"STORAGE_SECRET"`
	Namespace string `env:"STORAGE_NAMESPACE, default=oaclient"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=oaclient"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0" validate:"gte=0"`
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return LoadWith(envconfig.OsLookuper())
}

// loadDotEnv loads path into the process environment. A missing file is
// fine; one that cannot be parsed is not.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("config: load %s: %w", path, err)
}

// LoadWith reads configuration from l and validates it.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	path, err := expandHome(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("config: STORAGE_PATH: %w", err)
	}
	cfg.Storage.Path = path

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
