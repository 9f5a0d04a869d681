package config

import (
	"os"
	"time"

	"github.com/eadsgraphic/vizreport/internal/storage"
	"github.com/eadsgraphic/vizreport/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	MinIO     storage.MinIOConfig
	Report    ReportConfig
	TLS       TLSConfig
	LogLevel  string
}

type ServerConfig struct {
	Port           string
	Host           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type MongoDBConfig struct {
	URI             string
	Database        string
	Collection      string
	Timeout         time.Duration
	ConnectAttempts int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

type RateLimitConfig struct {
	Enabled  bool
	UseRedis bool
	RPS      int
	Burst    int
	Window   time.Duration
}

type ReportConfig struct {
	Enabled    bool
	ChromePath string
	NoSandbox  bool
	Timeout    time.Duration
	URLExpiry  time.Duration
}

// TLSConfig enables HTTPS when both files are set.
type TLSConfig struct {
	CertFile string
	KeyFile  string
}

func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// LoadConfig loads configuration from environment variables and an optional .env file.
// An empty MONGODB_URI is allowed; callers fall back to the in-memory store.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(envFile())

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", 10)
	viper.SetDefault("MONGODB_DATABASE", "vizreport")
	viper.SetDefault("MONGODB_COLLECTION", "visualizations")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MONGODB_CONNECT_ATTEMPTS", 3)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RATE_LIMIT_WINDOW", 1)
	viper.SetDefault("MINIO_BUCKET", "vizreport")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("REPORT_ENABLED", false)
	viper.SetDefault("REPORT_CHROME_NO_SANDBOX", true)
	viper.SetDefault("REPORT_TIMEOUT", 30)
	viper.SetDefault("REPORT_URL_EXPIRY", 15)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Host:           viper.GetString("SERVER_HOST"),
			Environment:    viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:    seconds("SERVER_READ_TIMEOUT"),
			WriteTimeout:   seconds("SERVER_WRITE_TIMEOUT"),
			RequestTimeout: seconds("SERVER_REQUEST_TIMEOUT"),
		},
		MongoDB: MongoDBConfig{
			URI:             viper.GetString("MONGODB_URI"),
			Database:        viper.GetString("MONGODB_DATABASE"),
			Collection:      viper.GetString("MONGODB_COLLECTION"),
			Timeout:         seconds("MONGODB_TIMEOUT"),
			ConnectAttempts: viper.GetInt("MONGODB_CONNECT_ATTEMPTS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis: viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:      viper.GetInt("RATE_LIMIT_RPS"),
			Burst:    viper.GetInt("RATE_LIMIT_BURST"),
			Window:   seconds("RATE_LIMIT_WINDOW"),
		},
		MinIO: storage.MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
		},
		Report: ReportConfig{
			Enabled:    viper.GetBool("REPORT_ENABLED"),
			ChromePath: viper.GetString("REPORT_CHROME_PATH"),
			NoSandbox:  viper.GetBool("REPORT_CHROME_NO_SANDBOX"),
			Timeout:    seconds("REPORT_TIMEOUT"),
			URLExpiry:  time.Duration(viper.GetInt("REPORT_URL_EXPIRY")) * time.Minute,
		},
		TLS: TLSConfig{
			CertFile: viper.GetString("TLS_CERT_FILE"),
			KeyFile:  viper.GetString("TLS_KEY_FILE"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if cfg.MongoDB.URI == "" {
		logger.Warnf("MONGODB_URI is not set; visualizations are kept in memory")
	}
	if cfg.MongoDB.ConnectAttempts < 1 {
		cfg.MongoDB.ConnectAttempts = 1
	}
	if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile == "" || cfg.TLS.CertFile == "" && cfg.TLS.KeyFile != "" {
		logger.Warnf("TLS_CERT_FILE and TLS_KEY_FILE must both be set; serving plain HTTP")
	}

	return cfg, nil
}

func seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

func envFile() string {
	if f := os.Getenv("VIZREPORT_ENV_FILE"); f != "" {
		return f
	}
	return ".env"
}
