package config

import (
	"os"
	"strconv"
	"time"

	"habittracker/pkg/circuitbreaker"
)

// StorageConfig 存储后端配置
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, redis, postgres, sqlite
	Key    string `yaml:"key"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DBConfig 数据库配置
type DBConfig struct {
	Host               string        `yaml:"host"`
	Port               int           `yaml:"port"`
	User               string        `yaml:"user"`
	Password           string        `yaml:"password"`
	Name               string        `yaml:"name"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold"`
}

// SQLiteConfig SQLite配置
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MQConfig 消息队列配置，URL 为空时不发布事件
type MQConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

// AuthConfig 认证配置，JWTSecret 为空时关闭认证
type AuthConfig struct {
	JWTSecret    string        `yaml:"jwt_secret"`
	PasswordHash string        `yaml:"password_hash"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// Enabled 是否开启认证
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// StatsConfig 统计配置
type StatsConfig struct {
	WindowDays int `yaml:"window_days"`
}

type Config struct {
	Storage StorageConfig         `yaml:"storage"`
	Redis   RedisConfig           `yaml:"redis"`
	DB      DBConfig              `yaml:"db"`
	SQLite  SQLiteConfig          `yaml:"sqlite"`
	MQ      MQConfig              `yaml:"mq"`
	Auth    AuthConfig            `yaml:"auth"`
	Server  ServerConfig          `yaml:"server"`
	Log     LogConfig             `yaml:"log"`
	Breaker circuitbreaker.Config `yaml:"breaker"`
	Stats   StatsConfig           `yaml:"stats"`
}

// Default 返回内置默认配置（无配置文件时使用）
func Default() Config {
	return Config{
		Storage: StorageConfig{Driver: "memory", Key: "habits-data"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		DB: DBConfig{
			Host:               "localhost",
			Port:               5432,
			User:               "habits",
			Name:               "habits",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		SQLite:  SQLiteConfig{Path: "habits.db"},
		MQ:      MQConfig{Exchange: "habits"},
		Auth:    AuthConfig{TokenTTL: 24 * time.Hour},
		Server:  ServerConfig{Port: "8080"},
		Log:     LogConfig{Level: "info"},
		Breaker: circuitbreaker.DefaultConfig(),
		Stats:   StatsConfig{WindowDays: 30},
	}
}

// OverrideFromEnv 用环境变量覆盖配置（生产环境使用）
func OverrideFromEnv(cfg *Config) {
	OverrideStorageFromEnv(&cfg.Storage)
	OverrideRedisFromEnv(&cfg.Redis)
	OverrideDBFromEnv(&cfg.DB)
	OverrideSQLiteFromEnv(&cfg.SQLite)
	OverrideMQFromEnv(&cfg.MQ)
	OverrideAuthFromEnv(&cfg.Auth)
	OverrideServerFromEnv(&cfg.Server)
	OverrideLogFromEnv(&cfg.Log)
}

// OverrideStorageFromEnv 从环境变量覆盖存储配置
func OverrideStorageFromEnv(cfg *StorageConfig) {
	if driver := os.Getenv("STORAGE_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if key := os.Getenv("STORAGE_KEY"); key != "" {
		cfg.Key = key
	}
}

// OverrideRedisFromEnv 从环境变量覆盖Redis配置
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideDBFromEnv 从环境变量覆盖数据库配置
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideSQLiteFromEnv 从环境变量覆盖SQLite配置
func OverrideSQLiteFromEnv(cfg *SQLiteConfig) {
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.Path = path
	}
}

// OverrideMQFromEnv 从环境变量覆盖MQ配置
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}

// OverrideAuthFromEnv 从环境变量覆盖认证配置
func OverrideAuthFromEnv(cfg *AuthConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	if hash := os.Getenv("AUTH_PASSWORD_HASH"); hash != "" {
		cfg.PasswordHash = hash
	}
}

// OverrideServerFromEnv 从环境变量覆盖服务器配置
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideLogFromEnv 从环境变量覆盖日志配置
func OverrideLogFromEnv(cfg *LogConfig) {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
}
