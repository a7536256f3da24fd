package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Queue     QueueConfig
	Wizard    WizardConfig
	EventsAPI EventsAPIConfig
	LogLevel  string
}

type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// QueueConfig 送出後的 plan 隊列：memory 或 redis (Redis Stream)
type QueueConfig struct {
	Driver        string
	BufferSize    int
	ConsumerID    string
	RetryDelay    time.Duration
	MaxRetryCount int
}

// WizardConfig 表單 session 與開放問題的策略設定
type WizardConfig struct {
	SessionTTL          time.Duration
	Timezone            string
	OvernightPolicy     string
	DeselectPolicy      string
	AllowEmptyBroadcast bool
}

// EventsAPIConfig 外部活動 API；BaseURL 為空時改寫入本地資料庫
type EventsAPIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

var AppConfig *Config

// LoadConfig 先讀取 .env(若存在)，再從環境變數組裝設定
func LoadConfig() *Config {
	_ = godotenv.Load()

	AppConfig = &Config{
		Server:    GetServerConfig(),
		Database:  GetDatabaseConfig(),
		Redis:     GetRedisConfig(),
		Queue:     GetQueueConfig(),
		Wizard:    GetWizardConfig(),
		EventsAPI: GetEventsAPIConfig(),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Server:   ServerConfig{Port: "8080", GinMode: "test", ShutdownTimeout: 5 * time.Second},
		Database: *testConfig,
		Redis:    testRedisConfig,
		Queue:    QueueConfig{Driver: "memory", BufferSize: 16},
		Wizard: WizardConfig{
			SessionTTL:      time.Minute,
			Timezone:        "UTC",
			OvernightPolicy: "wrap",
			DeselectPolicy:  "retain",
		},
		LogLevel: "info",
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "release"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetQueueConfig() QueueConfig {
	size, err := strconv.Atoi(getEnv("QUEUE_BUFFER_SIZE", "256"))
	if err != nil {
		panic(err)
	}

	retries, err := strconv.Atoi(getEnv("QUEUE_MAX_RETRY_COUNT", "5"))
	if err != nil {
		panic(err)
	}

	return QueueConfig{
		Driver:        getEnv("QUEUE_DRIVER", "redis"),
		BufferSize:    size,
		ConsumerID:    getEnv("QUEUE_CONSUMER_ID", ""),
		RetryDelay:    getEnvDuration("QUEUE_RETRY_DELAY", time.Second),
		MaxRetryCount: retries,
	}
}

func GetWizardConfig() WizardConfig {
	allowEmpty, err := strconv.ParseBool(getEnv("WIZARD_ALLOW_EMPTY_BROADCAST", "false"))
	if err != nil {
		panic(err)
	}

	return WizardConfig{
		SessionTTL:          getEnvDuration("WIZARD_SESSION_TTL", 2*time.Hour),
		Timezone:            getEnv("WIZARD_TIMEZONE", "Local"),
		OvernightPolicy:     getEnv("WIZARD_OVERNIGHT_POLICY", "wrap"),
		DeselectPolicy:      getEnv("WIZARD_DESELECT_POLICY", "retain"),
		AllowEmptyBroadcast: allowEmpty,
	}
}

func GetEventsAPIConfig() EventsAPIConfig {
	return EventsAPIConfig{
		BaseURL: getEnv("EVENTS_API_BASE_URL", ""),
		Token:   getEnv("EVENTS_API_TOKEN", ""),
		Timeout: getEnvDuration("EVENTS_API_TIMEOUT", 10*time.Second),
	}
}

// Location 解析 WIZARD_TIMEZONE，用於判斷「今天」
func (c WizardConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Errorf("invalid duration for %s: %w", key, err))
	}
	return d
}
