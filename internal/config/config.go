package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Engine   EngineConfig
	Notify   NotifyConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	// TierCacheTTL bounds how long simplified boundary tiers live in Redis.
	TierCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// EngineConfig tunes the alert rule engine.
type EngineConfig struct {
	// EvalInterval is the period of the scheduled full evaluation pass.
	EvalInterval time.Duration
	// RuleTimeout caps a single rule's evaluation, queries included.
	RuleTimeout time.Duration
	// ContainmentWorkers sizes the batch containment fan-out. Zero means
	// one worker per CPU.
	ContainmentWorkers int
	// AlertTTL sets how long a triggered alert stays relevant.
	AlertTTL time.Duration
	// ExpirySweepInterval is the period of the expired-alert cleanup.
	ExpirySweepInterval time.Duration
}

// NotifyConfig holds the outbound notification provider settings.
type NotifyConfig struct {
	EmailEndpoint string
	EmailAPIKey   string
	EmailSender   string
	PushEndpoint  string
	PushAPIKey    string
	// ChannelTimeout caps one delivery attempt on one channel.
	ChannelTimeout time.Duration
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TierCacheTTL: time.Duration(viper.GetInt("TIER_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Engine: EngineConfig{
			EvalInterval:        time.Duration(viper.GetInt("ENGINE_EVAL_INTERVAL")) * time.Second,
			RuleTimeout:         time.Duration(viper.GetInt("ENGINE_RULE_TIMEOUT")) * time.Second,
			ContainmentWorkers:  viper.GetInt("ENGINE_CONTAINMENT_WORKERS"),
			AlertTTL:            time.Duration(viper.GetInt("ENGINE_ALERT_TTL")) * time.Second,
			ExpirySweepInterval: time.Duration(viper.GetInt("ENGINE_EXPIRY_SWEEP_INTERVAL")) * time.Second,
		},
		Notify: NotifyConfig{
			EmailEndpoint:  viper.GetString("NOTIFY_EMAIL_ENDPOINT"),
			EmailAPIKey:    viper.GetString("NOTIFY_EMAIL_API_KEY"),
			EmailSender:    viper.GetString("NOTIFY_EMAIL_SENDER"),
			PushEndpoint:   viper.GetString("NOTIFY_PUSH_ENDPOINT"),
			PushAPIKey:     viper.GetString("NOTIFY_PUSH_API_KEY"),
			ChannelTimeout: time.Duration(viper.GetInt("NOTIFY_CHANNEL_TIMEOUT")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.TierCacheTTL == 0 {
		cfg.Cache.TierCacheTTL = 24 * time.Hour
	}
	if cfg.Engine.EvalInterval == 0 {
		cfg.Engine.EvalInterval = 5 * time.Minute
	}
	if cfg.Engine.RuleTimeout == 0 {
		cfg.Engine.RuleTimeout = 30 * time.Second
	}
	if cfg.Engine.AlertTTL == 0 {
		cfg.Engine.AlertTTL = 72 * time.Hour
	}
	if cfg.Engine.ExpirySweepInterval == 0 {
		cfg.Engine.ExpirySweepInterval = time.Hour
	}
	if cfg.Notify.EmailSender == "" {
		cfg.Notify.EmailSender = "alerts@coralledger.blue"
	}
	if cfg.Notify.ChannelTimeout == 0 {
		cfg.Notify.ChannelTimeout = 10 * time.Second
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "alert-engine-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Env, "production")
}
