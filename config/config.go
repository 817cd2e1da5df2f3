package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Env   string      `mapstructure:"app_env"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	DB    DBConfig    `mapstructure:"db"`
	Redis RedisConfig `mapstructure:"redis"`
	Kafka KafkaConfig `mapstructure:"kafka"`
	S3    S3Config    `mapstructure:"s3"`
	Auth  AuthConfig  `mapstructure:"auth"`
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

type HTTPConfig struct {
	Addr          string `mapstructure:"addr"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	// TimeZone is copied from store.timezone so CURRENT_DATE follows the store.
	TimeZone string `mapstructure:"-"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Broker      string `mapstructure:"broker"`
	GroupPrefix string `mapstructure:"group_prefix"`
}

type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	ProfileTimeout time.Duration `mapstructure:"profile_timeout"`
}

type StoreConfig struct {
	TaxRate         float64       `mapstructure:"tax_rate"`
	SectionCacheTTL time.Duration `mapstructure:"section_cache_ttl"`
	RatingMarkerTTL time.Duration `mapstructure:"rating_marker_ttl"`
	DefaultStock    int           `mapstructure:"default_stock"`
	TimeZone        string        `mapstructure:"timezone"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaults = map[string]interface{}{
	"app_env":                 "development",
	"http.addr":               ":8080",
	"http.public_base_url":    "http://localhost:8080",
	"db.host":                 "localhost",
	"db.port":                 "5432",
	"db.name":                 "storefront",
	"db.user":                 "postgres",
	"db.password":             "",
	"db.sslmode":              "disable",
	"redis.host":              "localhost",
	"redis.port":              "6379",
	"redis.password":          "",
	"redis.db":                0,
	"kafka.broker":            "localhost:9092",
	"kafka.group_prefix":      "storefront",
	"s3.region":               "us-east-1",
	"s3.bucket":               "",
	"s3.access_key_id":        "",
	"s3.secret_access_key":    "",
	"s3.public_base_url":      "",
	"auth.jwt_secret":         "",
	"auth.token_ttl":          24 * time.Hour,
	"auth.profile_timeout":    3 * time.Second,
	"store.tax_rate":          0.12,
	"store.section_cache_ttl": 5 * time.Minute,
	"store.rating_marker_ttl": 30 * 24 * time.Hour,
	"store.default_stock":     20,
	"store.timezone":          "UTC",
	"log.level":               "info",
	"log.format":              "text",
}

// Load reads .env files, an optional storefront.yaml and the environment.
// Environment keys are the upper-cased config keys with dots replaced by
// underscores (db.host -> DB_HOST).
func Load() (*Config, error) {
	loadDotEnv()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("storefront")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.DB.TimeZone = cfg.Store.TimeZone
	return &cfg, nil
}

func loadDotEnv() {
	files := []string{}
	if env := os.Getenv("APP_ENV"); env != "" {
		files = append(files, ".env."+env)
	}
	files = append(files, ".env")

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			log.Warnf("failed to load %s: %v", file, err)
		}
	}
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.Env != "development" && c.Env != "test" {
			return errors.New("AUTH_JWT_SECRET is required outside development")
		}
		c.Auth.JWTSecret = "storefront-dev-secret"
		log.Warn("AUTH_JWT_SECRET not set, using development secret")
	}
	if c.Store.TaxRate < 0 || c.Store.TaxRate >= 1 {
		return fmt.Errorf("STORE_TAX_RATE must be in [0,1), got %v", c.Store.TaxRate)
	}
	if c.Auth.ProfileTimeout <= 0 {
		return fmt.Errorf("AUTH_PROFILE_TIMEOUT must be positive, got %v", c.Auth.ProfileTimeout)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("AUTH_TOKEN_TTL must be positive, got %v", c.Auth.TokenTTL)
	}
	if _, err := c.Store.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the store's time zone; an empty name means UTC.
func (c StoreConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("STORE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return location, nil
}

func (c DBConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	if c.TimeZone != "" {
		dsn += " timezone=" + c.TimeZone
	}
	return dsn
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func InitLogger(cfg LogConfig, service string) *log.Entry {
	log.SetOutput(os.Stdout)
	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	return log.WithField("svc", service)
}

func MustInitPostgres(cfg DBConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database: ", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis: ", err)
	}

	return client
}

// instanceID is fixed for the life of the process.
var instanceID = uuid.NewString()

// KafkaReaderConfig puts every process in a consumer group of its own, so
// each instance is assigned all partitions of the topic and sees every
// change. New groups start at the latest offset.
func KafkaReaderConfig(cfg KafkaConfig, topic string) kafka.ReaderConfig {
	prefix := cfg.GroupPrefix
	if prefix == "" {
		prefix = "storefront"
	}
	return kafka.ReaderConfig{
		Brokers:     []string{cfg.Broker},
		Topic:       topic,
		GroupID:     prefix + "-" + instanceID,
		StartOffset: kafka.LastOffset,
	}
}

func NewKafkaReader(cfg KafkaConfig, topic string) *kafka.Reader {
	return kafka.NewReader(KafkaReaderConfig(cfg, topic))
}

func NewKafkaWriter(cfg KafkaConfig, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

// NewS3Client returns nil when no bucket is configured; image storage is
// then disabled.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg), nil
}

// PublicURL is the prefix used to build public object URLs.
func (c S3Config) PublicURL() string {
	if c.PublicBaseURL != "" {
		return strings.TrimRight(c.PublicBaseURL, "/")
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
}
