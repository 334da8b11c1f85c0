package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Objects  ObjectsConfig  `mapstructure:"objects"`
	Download DownloadConfig `mapstructure:"download"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	Mode string     `mapstructure:"mode"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	AllowAllOrigins bool     `mapstructure:"allow_all_origins"`
}

// StorageConfig selects where the local-storage items (saved collection,
// theme) live: a directory of JSON files, sqlite or postgres.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // file, sqlite, postgres
	Path        string `mapstructure:"path"`   // directory for file, db file for sqlite
	DSN         string `mapstructure:"dsn"`    // postgres only
	AutoMigrate bool   `mapstructure:"auto_migrate"`

	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ObjectsConfig is the export target for downloaded images and collection snapshots.
type ObjectsConfig struct {
	Type      string `mapstructure:"type"` // local, s3, r2, s3compatible
	LocalDir  string `mapstructure:"local_dir"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	PublicURL string `mapstructure:"public_url"`
	Prefix    string `mapstructure:"prefix"`
}

type DownloadConfig struct {
	Workers int `mapstructure:"workers"`
}

// LogConfig is left empty when unset so each binary can apply its own
// defaults through Resolve.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Resolve fills an unset level or format with the given defaults.
func (c LogConfig) Resolve(defaultLevel, defaultFormat string) LogConfig {
	if c.Level == "" {
		c.Level = defaultLevel
	}
	if c.Format == "" {
		c.Format = defaultFormat
	}
	return c
}

// ConnString returns the connection string for the configured database driver.
func (c *StorageConfig) ConnString() string {
	if c.Driver == "postgres" {
		return c.DSN
	}
	return c.Path
}

func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		v.AddConfigPath(dataDir())
	}

	v.SetEnvPrefix("MEMENEM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.user_agent", "memenem/1.0")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(dataDir(), "storage"))
	v.SetDefault("storage.auto_migrate", true)
	v.SetDefault("storage.max_idle_conns", 2)
	v.SetDefault("storage.max_open_conns", 4)
	v.SetDefault("storage.conn_max_lifetime", time.Hour)
	v.SetDefault("objects.type", "local")
	v.SetDefault("objects.local_dir", filepath.Join(dataDir(), "downloads"))
	v.SetDefault("objects.use_ssl", true)
	v.SetDefault("objects.bucket", "memenem")
	v.SetDefault("download.workers", 4)
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors.allow_all_origins", true)
	v.SetDefault("server.cors.allowed_origins", []string{})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The web client read NEXT_PUBLIC_API_URL; keep honouring it.
	v.BindEnv("api.base_url", "MEMENEM_API_URL", "API_URL", "NEXT_PUBLIC_API_URL")
	v.BindEnv("storage.dsn", "DATABASE_URL")
	v.BindEnv("objects.endpoint", "S3_ENDPOINT")
	v.BindEnv("objects.access_key", "S3_ACCESS_KEY", "AWS_ACCESS_KEY_ID")
	v.BindEnv("objects.secret_key", "S3_SECRET_KEY", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("objects.bucket", "S3_BUCKET")
	v.BindEnv("objects.region", "S3_REGION", "AWS_REGION")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// dataDir is where memenem keeps its files when no path is configured.
func dataDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".memenem")
	}
	return "./data"
}
