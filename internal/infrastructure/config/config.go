package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendMongo    = "mongo"
	BackendMinIO    = "minio"
	BackendPostgres = "postgres"
)

type Config struct {
	Env        string
	GRPCServer GRPCServer
	Storage    Storage
	Database   Database
	Mongo      Mongo
	MinIO      MinIO
	Redis      Redis
	Prometheus Prometheus
	Auth       Auth
	RateLimit  RateLimit
	Pagination Pagination
}

type GRPCServer struct {
	Address string
	Port    int
}

type Storage struct {
	Backend string
	DataDir string
}

type Database struct {
	Username string
	Password string
	Host     string
	Port     string
	DbName   string
	MaxConns int32
}

func (d Database) DSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		d.Username, d.Password, d.Host, d.Port, d.DbName)
}

type Mongo struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

type Redis struct {
	Enabled   bool
	Address   string
	Port      int
	Password  string
	DB        int
	PoolSize  int
	KeyPrefix string
}

type Prometheus struct {
	Address string
	Port    int
}

type Auth struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Pagination struct {
	PageSize int
}

func MustLoad() *Config {
	_ = godotenv.Load()

	cfg, err := Load(viper.New())
	if err != nil {
		log.Printf("Error reading config: %s", err)
		os.Exit(1)
	}
	return cfg
}

// Load reads config/config.yaml when present; NOTES_* environment variables override it.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("notes")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		GRPCServer: GRPCServer{
			Address: v.GetString("grpc_server.address"),
			Port:    v.GetInt("grpc_server.port"),
		},
		Storage: Storage{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			DataDir: v.GetString("storage.data_dir"),
		},
		Database: Database{
			Username: v.GetString("database.username"),
			Password: v.GetString("database.password"),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			DbName:   v.GetString("database.db_name"),
			MaxConns: v.GetInt32("database.max_conns"),
		},
		Mongo: Mongo{
			URI:        v.GetString("mongo.uri"),
			Database:   v.GetString("mongo.database"),
			Collection: v.GetString("mongo.collection"),
			Timeout:    v.GetDuration("mongo.timeout"),
		},
		MinIO: MinIO{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			Bucket:    v.GetString("minio.bucket"),
			Prefix:    v.GetString("minio.prefix"),
			UseSSL:    v.GetBool("minio.use_ssl"),
		},
		Redis: Redis{
			Enabled:   v.GetBool("redis.enabled"),
			Address:   v.GetString("redis.address"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			PoolSize:  v.GetInt("redis.pool_size"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Prometheus: Prometheus{
			Address: v.GetString("prometheus.address"),
			Port:    v.GetInt("prometheus.port"),
		},
		Auth: Auth{
			JWTSecret: v.GetString("auth.jwt_secret"),
			TokenTTL:  v.GetDuration("auth.token_ttl"),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("rate_limit.rps"),
			Burst: v.GetInt("rate_limit.burst"),
		},
		Pagination: Pagination{
			PageSize: v.GetInt("pagination.page_size"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("WARNING: auth.jwt_secret is not set; set a secure value outside development")
		cfg.Auth.JWTSecret = "dev"
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("grpc_server.address", "0.0.0.0")
	v.SetDefault("grpc_server.port", 50054)

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.data_dir", "data")

	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "admin")
	v.SetDefault("database.host", "notes-db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.db_name", "notes")
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("mongo.uri", "mongodb://mongo:27017")
	v.SetDefault("mongo.database", "notes")
	v.SetDefault("mongo.collection", "collections")
	v.SetDefault("mongo.timeout", 10*time.Second)

	v.SetDefault("minio.endpoint", "minio:9000")
	v.SetDefault("minio.bucket", "notes")
	v.SetDefault("minio.prefix", "collections/")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "redis")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.key_prefix", "notes:")

	v.SetDefault("prometheus.address", "0.0.0.0")
	v.SetDefault("prometheus.port", 9104)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)

	v.SetDefault("rate_limit.rps", 20.0)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("pagination.page_size", 10)
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory, BackendMongo, BackendMinIO, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Pagination.PageSize <= 0 {
		return fmt.Errorf("pagination.page_size must be positive, got %d", c.Pagination.PageSize)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive")
	}
	return nil
}
