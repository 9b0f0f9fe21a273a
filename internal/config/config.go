package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Queue backends for settlement jobs.
const (
	QueueMemory = "memory"
	QueueKafka  = "kafka"
)

// Lock backends guarding ledger rows.
const (
	LockRedis = "redis"
	LockLocal = "local"
)

// Config holds every setting of the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Exchanger ExchangerConfig
	Gateway   GatewayConfig
	JWT       JWTConfig
	Ledger    LedgerConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Host           string
	Port           string
	LogLevel       string
	CallbackSecret string
}

type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DB           string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", c.User, c.Password, c.Host, c.Port, c.DB)
}

type RedisConfig struct {
	Host                string
	Port                int
	DB                  int
	Password            string
	PoolSize            int
	MinIdleConns        int
	NotificationChannel string
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type KafkaConfig struct {
	Brokers         []string
	EventsTopic     string
	SettlementTopic string
	GroupID         string
}

type ExchangerConfig struct {
	Host    string
	Port    string
	Timeout time.Duration
}

// Addr returns host:port.
func (c ExchangerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type GatewayConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type JWTConfig struct {
	SecretKey string
	Exp       time.Duration
}

type LedgerConfig struct {
	FeeRate           decimal.Decimal
	WithdrawalFeeRate decimal.Decimal
	CancelWindow      time.Duration
	RateTTL           time.Duration
	RateMaxRetries    uint64
	SettlementWorkers int
	SettlementRetries int
	QueueBackend      string
	PrimaryCurrency   string
	SeedCurrencies    []string
	LockBackend       string
	LockExpiry        time.Duration
	EventMaxRetries   uint64
	OutboxInterval    time.Duration
	OutboxBatchSize   int
	OutboxClaimTTL    time.Duration
}

type RateLimitConfig struct {
	TransferLimit  int
	TransferWindow time.Duration
}

// Load reads path (when present) into the environment and builds Config with
// defaults for every missing key.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	p := &parser{}
	cfg := &Config{}

	cfg.App = AppConfig{
		Host:           getEnv("APP_HOST", "localhost"),
		Port:           getEnv("APP_PORT", "8080"),
		LogLevel:       getEnv("APP_LOG_LEVEL", "info"),
		CallbackSecret: getEnv("APP_CALLBACK_SECRET", "change_me_callback_secret"),
	}

	cfg.Postgres = PostgresConfig{
		Host:         getEnv("POSTGRES_HOST", "localhost"),
		Port:         p.int("POSTGRES_PORT", "5432"),
		User:         getEnv("POSTGRES_USER", "user"),
		Password:     getEnv("POSTGRES_PASSWORD", "password"),
		DB:           getEnv("POSTGRES_DB", "database"),
		MaxOpenConns: p.int("POSTGRES_MAX_OPEN_CONNS", "16"),
		MaxIdleConns: p.int("POSTGRES_MAX_IDLE_CONNS", "8"),
	}

	cfg.Redis = RedisConfig{
		Host:                getEnv("REDIS_HOST", "localhost"),
		Port:                p.int("REDIS_PORT", "6379"),
		DB:                  p.int("REDIS_DB", "0"),
		Password:            getEnv("REDIS_PASSWORD", ""),
		PoolSize:            p.int("REDIS_POOL_SIZE", "10"),
		MinIdleConns:        p.int("REDIS_MIN_IDLE_CONNS", "2"),
		NotificationChannel: getEnv("REDIS_NOTIFICATION_CHANNEL", "notifications"),
	}

	cfg.Kafka = KafkaConfig{
		Brokers:         splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		EventsTopic:     getEnv("KAFKA_EVENTS_TOPIC", "transaction-events"),
		SettlementTopic: getEnv("KAFKA_SETTLEMENT_TOPIC", "settlement-jobs"),
		GroupID:         getEnv("KAFKA_GROUP_ID", "gw-remit-wallet-settlement"),
	}

	cfg.Exchanger = ExchangerConfig{
		Host:    getEnv("GW_EXCHANGER_HOST", "localhost"),
		Port:    getEnv("GW_EXCHANGER_PORT", "50051"),
		Timeout: p.duration("GW_EXCHANGER_TIMEOUT", "3s"),
	}

	cfg.Gateway = GatewayConfig{
		BaseURL: getEnv("GATEWAY_BASE_URL", "http://localhost:12111"),
		APIKey:  getEnv("GATEWAY_API_KEY", ""),
		Timeout: p.duration("GATEWAY_TIMEOUT", "10s"),
	}

	cfg.JWT = JWTConfig{
		SecretKey: getEnv("JWT_SECRET_KEY", "my_super_secret_key"),
		Exp:       time.Duration(p.int("JWT_EXP_SECOND", "3600")) * time.Second,
	}

	cfg.Ledger = LedgerConfig{
		FeeRate:           p.decimal("LEDGER_FEE_RATE", "0.02"),
		WithdrawalFeeRate: p.decimal("LEDGER_WITHDRAWAL_FEE_RATE", "0"),
		CancelWindow:      p.duration("LEDGER_CANCEL_WINDOW", "24h"),
		RateTTL:           p.duration("LEDGER_RATE_TTL", "5m"),
		RateMaxRetries:    uint64(p.int("LEDGER_RATE_MAX_RETRIES", "3")),
		SettlementWorkers: p.int("LEDGER_SETTLEMENT_WORKERS", "4"),
		SettlementRetries: p.int("LEDGER_SETTLEMENT_RETRIES", "3"),
		QueueBackend:      getEnv("LEDGER_QUEUE_BACKEND", QueueMemory),
		PrimaryCurrency:   strings.ToUpper(getEnv("LEDGER_PRIMARY_CURRENCY", "USD")),
		SeedCurrencies:    splitList(strings.ToUpper(getEnv("LEDGER_SEED_CURRENCIES", "USD,EUR,GBP,INR"))),
		LockBackend:       getEnv("LEDGER_LOCK_BACKEND", LockRedis),
		LockExpiry:        p.duration("LEDGER_LOCK_EXPIRY", "10s"),
		EventMaxRetries:   uint64(p.int("LEDGER_EVENT_MAX_RETRIES", "3")),
		OutboxInterval:    p.duration("LEDGER_OUTBOX_INTERVAL", "1s"),
		OutboxBatchSize:   p.int("LEDGER_OUTBOX_BATCH_SIZE", "50"),
		OutboxClaimTTL:    p.duration("LEDGER_OUTBOX_CLAIM_TTL", "1m"),
	}

	cfg.RateLimit = RateLimitConfig{
		TransferLimit:  p.int("RATE_LIMIT_TRANSFER", "10"),
		TransferWindow: p.duration("RATE_LIMIT_TRANSFER_WINDOW", "1h"),
	}

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Ledger.FeeRate.IsNegative() || c.Ledger.WithdrawalFeeRate.IsNegative() {
		return fmt.Errorf("fee rates must not be negative")
	}
	if c.Ledger.SettlementWorkers < 1 {
		return fmt.Errorf("LEDGER_SETTLEMENT_WORKERS must be at least 1")
	}
	switch c.Ledger.QueueBackend {
	case QueueMemory, QueueKafka:
	default:
		return fmt.Errorf("unknown LEDGER_QUEUE_BACKEND %q", c.Ledger.QueueBackend)
	}
	if c.Ledger.OutboxInterval <= 0 || c.Ledger.OutboxBatchSize < 1 {
		return fmt.Errorf("LEDGER_OUTBOX_INTERVAL and LEDGER_OUTBOX_BATCH_SIZE must be positive")
	}
	switch c.Ledger.LockBackend {
	case LockRedis, LockLocal:
	default:
		return fmt.Errorf("unknown LEDGER_LOCK_BACKEND %q", c.Ledger.LockBackend)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parser keeps the first conversion error so Load reads like a flat list.
type parser struct {
	err error
}

func (p *parser) int(key, def string) int {
	v, err := strconv.Atoi(getEnv(key, def))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key, def string) time.Duration {
	v, err := time.ParseDuration(getEnv(key, def))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}

func (p *parser) decimal(key, def string) decimal.Decimal {
	v, err := decimal.NewFromString(getEnv(key, def))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return v
}
