package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

var (
	ErrUnknownStorage = errors.New("unknown storage driver")
	ErrLockTTL        = errors.New("redis lock ttl must exceed the gemini timeout")
)

type Config struct {
	AppName     string   `yaml:"app-name" env:"APP_NAME" env-default:"tic-tac-toe"`
	Environment string   `yaml:"environment" env:"ENVIRONMENT" env-default:"dev"`
	LogLevel    string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort    string   `yaml:"http-port" env:"HTTP_PORT" env-default:"8000"`
	CORSOrigins []string `yaml:"cors-origins" env:"CORS_ORIGINS" env-separator:"," env-default:"http://localhost:5173"`
	Storage     Storage  `yaml:"storage"`
	Redis       Redis    `yaml:"redis"`
	Gemini      Gemini   `yaml:"gemini"`
	OTel        OTel     `yaml:"otel"`
}

type Storage struct {
	Driver      string `yaml:"driver" env:"STORAGE_DRIVER"`
	SQLitePath  string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"tictactoe.db"`
	DatabaseURL string `yaml:"database-url" env:"DATABASE_URL"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	GameTTL  time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
	LockTTL  time.Duration `yaml:"lock-ttl" env:"REDIS_LOCK_TTL" env-default:"30s"`
}

type Gemini struct {
	APIKey   string        `yaml:"api-key" env:"GEMINI_API_KEY"`
	Model    string        `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	Endpoint string        `yaml:"endpoint" env:"GEMINI_ENDPOINT" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	Timeout  time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT" env-default:"10s"`
}

type OTel struct {
	Endpoint string `yaml:"endpoint" env:"OTEL_ENDPOINT"`
}

// MustLoad - load all configurations from the yaml file at path, overridden by
// environment variables. A missing file means environment only.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, err
		}
	case path == "" || errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, err
		}
	default:
		return nil, statErr
	}

	if err := config.Storage.resolve(); err != nil {
		return nil, err
	}

	// a move holds the game lock across the model call
	if config.Storage.Driver == StorageRedis && config.Redis.LockTTL <= config.Gemini.Timeout {
		return nil, fmt.Errorf("%w: lock-ttl %s, timeout %s", ErrLockTTL, config.Redis.LockTTL, config.Gemini.Timeout)
	}

	return config, nil
}

// resolve - an empty driver means postgres when a database url is set, memory otherwise.
func (that *Storage) resolve() error {
	that.Driver = strings.ToLower(strings.TrimSpace(that.Driver))

	switch that.Driver {
	case "":
		if that.DatabaseURL != "" {
			that.Driver = StoragePostgres
		} else {
			that.Driver = StorageMemory
		}
	case StorageMemory, StorageRedis, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Driver)
	}

	if that.Driver == StoragePostgres && that.DatabaseURL == "" {
		return fmt.Errorf("%w: postgres needs a database url", ErrUnknownStorage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
