package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// LoadEnv reads an optional .env file into the process environment.
// Variables already set win over the file.
func LoadEnv() {
	_ = godotenv.Load()
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func PostgresDSN() string {
	return "host=" + GetEnv("DB_HOST", "localhost") + " port=" + GetEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + GetEnv("DB_NAME", "foodcart") + " sslmode=disable"
}

// InitPostgres opens and pings the database. Pool sizes come from
// DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS.
func InitPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	configurePool(db)
	return db, nil
}

func configurePool(db *sqlx.DB) {
	db.SetMaxOpenConns(GetInt("DB_MAX_OPEN_CONNS", 25))
	db.SetMaxIdleConns(GetInt("DB_MAX_IDLE_CONNS", 5))
	db.SetConnMaxLifetime(GetDuration("DB_CONN_MAX_LIFETIME", time.Hour))
}

func MustInitPostgres(logger *zap.SugaredLogger) *sqlx.DB {
	db, err := InitPostgres(context.Background())
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	return db
}

func InitRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: GetEnv("REDIS_HOST", "localhost") + ":" + GetEnv("REDIS_PORT", "6379"),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func MustInitRedis(logger *zap.SugaredLogger) *redis.Client {
	client, err := InitRedis(context.Background())
	if err != nil {
		logger.Fatalw("Failed to connect to Redis", "error", err)
	}
	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{GetEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(GetEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewLogger returns a production logger unless ENV is "development".
func NewLogger() *zap.SugaredLogger {
	if GetEnv("ENV", "production") == "development" {
		return zap.Must(zap.NewDevelopment()).Sugar()
	}
	return zap.Must(zap.NewProduction()).Sugar()
}
