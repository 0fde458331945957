package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type GSheetConfig struct {
	SheetID         string   `toml:"sheet_id"`
	SheetName       string   `toml:"sheet_name"`
	CredentialsPath string   `toml:"credentials_path"`
	Schedule        string   `toml:"schedule"`
	HeaderRange     string   `toml:"header_range"`
	TimestampRange  string   `toml:"timestamp_range"`
	Students        []string `toml:"students"`
}

type Config struct {
	Server struct {
		Port       string `toml:"port"`
		EnableAuth bool   `toml:"enable_auth"`
		Timezone   string `toml:"timezone"`
	} `toml:"server"`

	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenHeader      string `toml:"token_header"`
		TokenKeyTemplate string `toml:"token_key_template"`
	} `toml:"auth"`

	API struct {
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Cache struct {
		Enabled            bool   `toml:"enabled"`
		RedisURL           string `toml:"redis_url"`
		KeyPrefix          string `toml:"key_prefix"`
		TTLSeconds         int    `toml:"ttl_seconds"`
		GranularitySeconds int    `toml:"granularity_seconds"`
	} `toml:"cache"`

	Scoring scoring.Targets `toml:"scoring"`

	Difficulty struct {
		Enabled   bool   `toml:"enabled"`
		URL       string `toml:"url"`
		TimeoutMS int    `toml:"timeout_ms"`

		BreakerFailures        int `toml:"breaker_failures"`
		BreakerCooldownSeconds int `toml:"breaker_cooldown_seconds"`
		MaxPerSnapshot         int `toml:"max_per_snapshot"`
	} `toml:"difficulty"`

	Bot struct {
		Token    string  `toml:"token"`
		AdminIDs []int64 `toml:"admin_ids"`
	} `toml:"bot"`

	GSheet        map[string]GSheetConfig `toml:"gsheet"`
	EmojiVariants []string                `toml:"emoji_variants"`
}

// env overrides for secrets, optionally loaded from .env
const (
	envDSN      = "PLUGGBULLE_DSN"
	envRedisURL = "PLUGGBULLE_REDIS_URL"
	envBotToken = "PLUGGBULLE_BOT_TOKEN"
)

func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	config.applyDefaults()
	config.applyEnv()

	if config.Server.Port == "" {
		return nil, fmt.Errorf("server port is not specified in config, use a value like :9999")
	}
	if config.Database.DSN == "" {
		return nil, fmt.Errorf("database dsn is not specified in config or %s", envDSN)
	}
	if _, err := config.Location(); err != nil {
		return nil, err
	}
	return &config, nil
}

func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	logger.Debug.Printf("Loaded scoring targets: %+v", config.Scoring)
	return config, nil
}

func (c *Config) applyDefaults() {
	defaults := scoring.DefaultTargets()
	if c.Scoring.Grade == 0 {
		c.Scoring.Grade = defaults.Grade
	}
	if c.Scoring.Attendance == 0 {
		c.Scoring.Attendance = defaults.Attendance
	}
	if c.Auth.TokenHeader == "" {
		c.Auth.TokenHeader = "Authorization"
	}
	if c.Auth.TokenKeyTemplate == "" {
		c.Auth.TokenKeyTemplate = "auth:{student}"
	}
	if c.Database.MigrationsDir == "" {
		c.Database.MigrationsDir = "./migrations"
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "dashboard:"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.Cache.GranularitySeconds == 0 {
		c.Cache.GranularitySeconds = 60
	}
	if c.Difficulty.TimeoutMS == 0 {
		c.Difficulty.TimeoutMS = 2000
	}
	if c.Difficulty.BreakerFailures == 0 {
		c.Difficulty.BreakerFailures = 3
	}
	if c.Difficulty.BreakerCooldownSeconds == 0 {
		c.Difficulty.BreakerCooldownSeconds = 60
	}
	if c.Difficulty.MaxPerSnapshot == 0 {
		c.Difficulty.MaxPerSnapshot = 5
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(envRedisURL); v != "" {
		c.Auth.RedisURL = v
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(envBotToken); v != "" {
		c.Bot.Token = v
	}
}

func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("bad timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}
