package config

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname" env:"APPNAME,default=Medical Forum"`
	AppEnv  string `json:"appenv" env:"APPENV,default=development"`
	AppPort uint16 `json:"appport" env:"APPPORT,default=5000"`
	GinMode string `json:"ginmode" env:"GINMODE,default=debug"`

	DBDriver string `json:"dbdriver" env:"DBDRIVER,default=sqlite"`
	DBPath   string `json:"dbpath" env:"DBPATH,default=db/medical_forum_data.db"`
	DBHost   string `json:"dbhost" env:"DBHOST,default=localhost"`
	DBPort   uint16 `json:"dbport" env:"DBPORT,default=3306"`
	DBName   string `json:"dbname" env:"DBNAME,default=medical_forum"`
	DBUSER   string `json:"dbuser" env:"DBUSER"`
	DBPass   string `json:"dbpass" env:"DBPASS"`

	RedisEnabled  bool   `json:"redis_enabled" env:"REDIS_ENABLED,default=false"`
	RedisAddr     string `json:"redis_addr" env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `json:"-" env:"REDIS_PASSWORD"`
	RedisDB       int    `json:"redis_db" env:"REDIS_DB,default=0"`

	RateLimit  int           `json:"rate_limit" env:"RATE_LIMIT,default=30"`
	RateWindow time.Duration `json:"rate_window" env:"RATE_WINDOW,default=1m"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables (and a .env file when present),
// and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine, the environment may already be populated.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		cfg := &Config{}
		if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
			log.Printf("Invalid environment configuration, falling back to defaults: %v", err)
			cfg = defaultConfig()
		}
		config = cfg
	})
	return config
}

// IsTest reports whether the application runs in the test environment.
func (c *Config) IsTest() bool {
	return c != nil && c.AppEnv == "test"
}

func defaultConfig() *Config {
	return &Config{
		AppName:    "Medical Forum",
		AppEnv:     "development",
		AppPort:    5000,
		GinMode:    "debug",
		DBDriver:   "sqlite",
		DBPath:     "db/medical_forum_data.db",
		DBHost:     "localhost",
		DBPort:     3306,
		DBName:     "medical_forum",
		RedisAddr:  "localhost:6379",
		RateLimit:  30,
		RateWindow: time.Minute,
	}
}

// ResetConfigForTest drops the cached configuration so the next LoadConfig
// call reads the environment again.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}
