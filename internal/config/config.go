package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/weiawesome/amigos-chat/pkg/config"
	"github.com/weiawesome/amigos-chat/pkg/database"
	pkglog "github.com/weiawesome/amigos-chat/pkg/log"
	"github.com/weiawesome/amigos-chat/pkg/middleware"
)

type Config struct {
	Server   ServerConfig
	GRPC     GRPCConfig `mapstructure:"grpc"`
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      pkglog.Config
	CORS     middleware.CORSConfig `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string
	Port int
}

// Address returns the HTTP listen address.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Host    string
	Port    int
}

// Address returns the gRPC listen address.
func (g GRPCConfig) Address() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// ToDatabaseConfig converts to the pkg/database connection config.
func (d DatabaseConfig) ToDatabaseConfig() *database.Config {
	return &database.Config{
		Driver:          d.Driver,
		Host:            d.Host,
		Port:            d.Port,
		User:            d.User,
		Password:        d.Password,
		DBName:          d.DBName,
		SSLMode:         d.SSLMode,
		FilePath:        d.FilePath,
		MaxIdleConns:    d.MaxIdleConns,
		MaxOpenConns:    d.MaxOpenConns,
		ConnMaxLifetime: d.ConnMaxLifetime,
		LogLevel:        d.LogLevel,
	}
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Prefix  string        `mapstructure:"prefix"`
	TTL     time.Duration `mapstructure:"ttl"`
}

var envBindings = map[string]string{
	"server.host":                "SERVER_HOST",
	"server.port":                "SERVER_PORT",
	"grpc.enabled":               "GRPC_ENABLED",
	"grpc.port":                  "GRPC_PORT",
	"database.driver":            "DB_DRIVER",
	"database.host":              "DB_HOST",
	"database.port":              "DB_PORT",
	"database.user":              "DB_USER",
	"database.password":          "DB_PASSWORD",
	"database.dbname":            "DB_NAME",
	"database.sslmode":           "DB_SSLMODE",
	"database.file_path":         "DB_FILE_PATH",
	"database.max_idle_conns":    "DB_MAX_IDLE_CONNS",
	"database.max_open_conns":    "DB_MAX_OPEN_CONNS",
	"database.conn_max_lifetime": "DB_CONN_MAX_LIFETIME",
	"database.log_level":         "DB_LOG_LEVEL",
	"redis.address":              "REDIS_ADDRESS",
	"redis.password":             "REDIS_PASSWORD",
	"cache.enabled":              "CACHE_ENABLED",
	"log.level":                  "LOG_LEVEL",
	"log.pretty":                 "LOG_PRETTY",
	"cors.allowed_origins":       "CORS_ALLOWED_ORIGINS",
}

// Load reads config from ./config/config.yaml, .env and the environment.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(configPath string) (*Config, error) {
	v, err := pkgconfig.Load(configPath, "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 2022)
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50070)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "amigos")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/amigos.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.prefix", "amigos")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.service_name", "amigos-chat")
	v.SetDefault("cors.allowed_origins", []string{"*"})

	if err := pkgconfig.BindEnvs(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
