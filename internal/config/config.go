package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const envFile = ".env"

type Config struct {
	Env      string         `env:"ENV" env-default:"dev"`
	Server   HTTPServer     `env-prefix:"SERVER_"`
	Postgres PostgresConfig `env-prefix:"PG_"`
	Roster   RosterConfig   `env-prefix:"ROSTER_"`
	Noise    NoiseConfig    `env-prefix:"NOISE_"`

	ImageBaseURL string `env:"IMAGE_BASE_URL" env-default:"http://localhost:8080"`
	AssetsDir    string `env:"ASSETS_DIR" env-default:"./assets"`
}

type HTTPServer struct {
	Port            string        `env:"PORT" env-default:"8080"`
	Timeout         time.Duration `env:"TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	Host     string `env:"HOST" env-default:"localhost"`
	Port     int    `env:"PORT" env-default:"5432"`
	User     string `env:"USER" env-default:"postgres"`
	Password string `env:"PASSWORD" env-default:"postgres"`
	DbName   string `env:"DBNAME" env-default:"shortmovie_db"`
	SslMode  string `env:"SSLMODE" env-default:"disable"`
}

// RosterConfig points the About page at the members endpoint it renders.
type RosterConfig struct {
	Endpoint string        `env:"ENDPOINT" env-default:"http://localhost:8080/api/members"`
	Timeout  time.Duration `env:"TIMEOUT" env-default:"5s"`
}

type NoiseConfig struct {
	Points   int           `env:"POINTS" env-default:"60"`
	Interval time.Duration `env:"INTERVAL" env-default:"200ms"`
}

// DSN returns a lib/pq connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DbName, p.SslMode)
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func Load() (*Config, error) {
	const op = "config.Load"

	// Values already present in the environment win over .env.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: failed to read %s: %w", op, envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to read config from environment: %w", op, err)
	}

	if cfg.Noise.Points <= 0 {
		return nil, fmt.Errorf("%s: NOISE_POINTS must be positive, got %d", op, cfg.Noise.Points)
	}
	if cfg.Noise.Interval <= 0 {
		return nil, fmt.Errorf("%s: NOISE_INTERVAL must be positive, got %s", op, cfg.Noise.Interval)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err.Error())
	}

	return cfg
}
