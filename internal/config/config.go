package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	BackendMemory    = "memory"
	BackendPostgres  = "postgres"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
)

type Config struct {
	Port                  string
	AllowedOrigin         string
	AppEnv                string
	StoreBackend          string
	DatabaseURL           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	FirestoreProjectID    string
	AuthSecret            string
	AccessTokenTTLMinutes int
	LogLevel              string
	LogFormat             string
}

// Load reads the environment. Keys map one to one onto upper-case variables
// (store_backend -> STORE_BACKEND).
func Load() Config {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origin", "http://127.0.0.1:3000")
	v.SetDefault("app_env", "development")
	v.SetDefault("store_backend", "")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("firestore_project_id", "")
	v.SetDefault("auth_secret", "")
	v.SetDefault("access_token_ttl_minutes", 480)
	v.SetDefault("log_level", "")
	v.SetDefault("log_format", "")
	v.AutomaticEnv()

	tokenTTL := v.GetInt("access_token_ttl_minutes")
	if tokenTTL < 1 {
		tokenTTL = 480
	}

	cfg := Config{
		Port:                  v.GetString("port"),
		AllowedOrigin:         v.GetString("allowed_origin"),
		AppEnv:                strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		StoreBackend:          strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
		DatabaseURL:           v.GetString("database_url"),
		RedisAddr:             v.GetString("redis_addr"),
		RedisPassword:         v.GetString("redis_password"),
		RedisDB:               v.GetInt("redis_db"),
		FirestoreProjectID:    strings.TrimSpace(v.GetString("firestore_project_id")),
		AuthSecret:            strings.TrimSpace(v.GetString("auth_secret")),
		AccessTokenTTLMinutes: tokenTTL,
		LogLevel:              v.GetString("log_level"),
		LogFormat:             v.GetString("log_format"),
	}
	if cfg.StoreBackend == "" {
		cfg.StoreBackend = inferBackend(cfg)
	}
	return cfg
}

// inferBackend keeps the old behaviour of switching to postgres as soon as a
// DATABASE_URL is present.
func inferBackend(cfg Config) string {
	switch {
	case cfg.DatabaseURL != "":
		return BackendPostgres
	case cfg.RedisAddr != "":
		return BackendRedis
	case cfg.FirestoreProjectID != "":
		return BackendFirestore
	default:
		return BackendMemory
	}
}

// Validate checks that the chosen backend has what it needs to connect.
func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_ADDR")
		}
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("STORE_BACKEND=firestore requires FIRESTORE_PROJECT_ID")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}
