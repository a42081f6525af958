package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Session store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type (
	APIConfig struct {
		BaseURL string
		Timeout time.Duration
	}

	ServerConfig struct {
		Address         string
		Host            string
		StaticDir       string
		ShutdownTimeout time.Duration
	}

	SessionConfig struct {
		Store        string
		TTL          time.Duration
		CookieSecure bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}

	CacheConfig struct {
		Store   string // memory or redis
		TTL     time.Duration
		Channel string
	}

	GateConfig struct {
		LoginPath string
		RulesFile string
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Locale       string
		Build        string
		RollbarToken string

		API      APIConfig
		Server   ServerConfig
		Session  SessionConfig
		Redis    RedisConfig
		Database DatabaseConfig
		Cache    CacheConfig
		Gate     GateConfig
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewViper returns a viper instance with the app defaults, reading env vars prefixed by the
// current environment (DEV by default). `config/.env.<env>` under dir is loaded when it exists.
func NewViper(dir string) (*viper.Viper, string, error) {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Academy")
	v.SetDefault("locale", "ar")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbar.token", "")
	v.SetDefault("api.baseURL", "http://127.0.0.1:8000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.staticDir", "")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("session.cookieSecure", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "academy")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("cache.store", StoreMemory)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.channel", "academy:invalidate")
	v.SetDefault("gate.loginPath", "/login")
	v.SetDefault("gate.rulesFile", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch strings.ToUpper(env) {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	env = strings.ToUpper(env)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	if dir != "" {
		dotEnvPath := filepath.Join(dir, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, "", errors.Wrapf(err, "loading %s", dotEnvPath)
			}
		} else if !os.IsNotExist(err) {
			return nil, "", errors.Wrapf(err, "stat %s", dotEnvPath)
		}
	}
	v.AutomaticEnv()

	// the base URL is shared with the other front-ends, hence not prefixed
	if err := v.BindEnv("api.baseURL", env+"_API_BASEURL", "API_BASE_URL"); err != nil {
		return nil, "", errors.Wrap(err, "binding API_BASE_URL")
	}
	return v, env, nil
}

// LoadConfig builds the app Config from defaults, `.env` files and the environment.
func LoadConfig(dir string) (*Config, error) {
	v, env, err := NewViper(dir)
	if err != nil {
		return nil, err
	}
	return ConfigFromViper(v, env), nil
}

func ConfigFromViper(v *viper.Viper, env string) *Config {
	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Locale:       CleanString(v.GetString("locale"), true /* lower */),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbar.token"),
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.baseURL"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			Host:            v.GetString("server.host"),
			StaticDir:       v.GetString("server.staticDir"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		Session: SessionConfig{
			Store:        CleanString(v.GetString("session.store"), true /* lower */),
			TTL:          v.GetDuration("session.ttl"),
			CookieSecure: v.GetBool("session.cookieSecure"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Cache: CacheConfig{
			Store:   CleanString(v.GetString("cache.store"), true /* lower */),
			TTL:     v.GetDuration("cache.ttl"),
			Channel: v.GetString("cache.channel"),
		},
		Gate: GateConfig{
			LoginPath: v.GetString("gate.loginPath"),
			RulesFile: v.GetString("gate.rulesFile"),
		},
	}
	return conf
}

// UsesRedis reports whether sessions or views are kept in Redis.
func (c *Config) UsesRedis() bool {
	return c.Session.Store == StoreRedis || c.Cache.Store == StoreRedis
}
