package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DB struct {
	URL        string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	Migrations string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
}

type S3 struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Profile   string
}

type Storage struct {
	Driver    string
	PublicURL string
	MinIO     MinIO
	S3        S3
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RateLimit struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

type RabbitMQ struct {
	URL      string
	Exchange string
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort    int
	DB            DB
	Storage       Storage
	Redis         Redis
	RateLimit     RateLimit
	RabbitMQ      RabbitMQ
	Log           Log
	JWTSecretKey  string
	TokenDuration time.Duration
	AllowedOrigin string
	MaxUploadSize int64
	BcryptCost    int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 5000)

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "cliper")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("MIGRATIONS_PATH", "migrations/001_create_tables.sql")

	v.SetDefault("STORAGE_DRIVER", "minio")
	v.SetDefault("STORAGE_PUBLIC_URL", "")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET_NAME", "cliper")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("AWS_PROFILE", "")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")

	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "notifications")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_DURATION", "168h")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)
	v.SetDefault("BCRYPT_COST", 12)

	return v
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func LoadDB(v *viper.Viper) DB {
	return DB{
		URL:        v.GetString("DATABASE_URL"),
		DbHOST:     v.GetString("DB_HOST"),
		DbPORT:     v.GetString("DB_PORT"),
		DbUSER:     v.GetString("DB_USER"),
		DbPASSWORD: v.GetString("DB_PASSWORD"),
		DbNAME:     v.GetString("DB_NAME"),
		DbSSLMODE:  v.GetString("DB_SSLMODE"),
		Migrations: v.GetString("MIGRATIONS_PATH"),
	}
}

func LoadStorage(v *viper.Viper) Storage {
	return Storage{
		Driver:    strings.ToLower(v.GetString("STORAGE_DRIVER")),
		PublicURL: strings.TrimSuffix(v.GetString("STORAGE_PUBLIC_URL"), "/"),
		MinIO: MinIO{
			Endpoint:   v.GetString("MINIO_ENDPOINT"),
			AccessKey:  v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:  v.GetString("MINIO_SECRET_KEY"),
			BucketName: v.GetString("MINIO_BUCKET_NAME"),
			UseSSL:     v.GetBool("MINIO_USE_SSL"),
			Region:     v.GetString("MINIO_REGION"),
		},
		S3: S3{
			Bucket:    v.GetString("S3_BUCKET"),
			Region:    v.GetString("S3_REGION"),
			Endpoint:  v.GetString("S3_ENDPOINT"),
			AccessKey: v.GetString("S3_ACCESS_KEY"),
			SecretKey: v.GetString("S3_SECRET_KEY"),
			Profile:   v.GetString("AWS_PROFILE"),
		},
	}
}

func LoadRateLimit(v *viper.Viper) RateLimit {
	rl := RateLimit{
		Enabled: v.GetBool("RATE_LIMIT_ENABLED"),
		Max:     v.GetInt("RATE_LIMIT_MAX"),
		Window:  parseDuration(v.GetString("RATE_LIMIT_WINDOW"), 15*time.Minute),
	}
	if rl.Max < 1 {
		rl.Max = 1
	}
	return rl
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return FromViper(newViper())
}

func FromViper(v *viper.Viper) *Config {
	maxUpload := v.GetInt64("MAX_UPLOAD_SIZE")
	if maxUpload <= 0 {
		maxUpload = 10 * 1024 * 1024
	}

	return &Config{
		ServerPort: v.GetInt("SERVER_PORT"),
		DB:         LoadDB(v),
		Storage:    LoadStorage(v),
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: LoadRateLimit(v),
		RabbitMQ: RabbitMQ{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		JWTSecretKey:  v.GetString("JWT_SECRET"),
		TokenDuration: parseDuration(v.GetString("TOKEN_DURATION"), 7*24*time.Hour),
		AllowedOrigin: v.GetString("FRONTEND_URL"),
		MaxUploadSize: maxUpload,
		BcryptCost:    v.GetInt("BCRYPT_COST"),
	}
}
