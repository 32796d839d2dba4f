package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Issuer    string        // Required: issuer claim for access tokens
	JWTSecret string        // Required: HMAC secret for signing access tokens
	AccessTTL time.Duration // Optional: access token lifetime (default: 12h)

	DBDriver     string // Optional: database driver (sqlite, postgres) (default: sqlite)
	DatabaseFile string // Optional: path to SQLite database file (default: ./tracker.db)
	DatabaseURL  string // Required for postgres: connection string
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	AdminUsername string // Optional: seed admin account when the user table is empty (default: admin)
	AdminPassword string // Optional: seed admin password; skipped when empty

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	WatchdogInterval     time.Duration // Idle watchdog sweep cadence (default: 1m)
	IdleAfter            time.Duration // Inactivity before a session is marked idle (default: 10m)
	CheckoutAfter        time.Duration // Inactivity before auto check-out; 0 disables (default: 0)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	LogRetention         time.Duration // Activity-log retention; 0 keeps everything (default: 0)
}

// fileConfig mirrors Config for the optional YAML file. Values from the
// file seed the config before environment variables override them.
type fileConfig struct {
	Issuer string `yaml:"issuer"`
	Env    string `yaml:"env"`
	Port   int    `yaml:"port"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Auth struct {
		JWTSecret  string `yaml:"jwt_secret"`
		AccessTTL  string `yaml:"access_ttl"`
		PepperFile string `yaml:"pepper_file"`
	} `yaml:"auth"`

	Database struct {
		Driver string `yaml:"driver"`
		File   string `yaml:"file"`
		URL    string `yaml:"url"`
	} `yaml:"database"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Watchdog struct {
		Interval      string `yaml:"interval"`
		IdleAfter     string `yaml:"idle_after"`
		CheckoutAfter string `yaml:"checkout_after"`
	} `yaml:"watchdog"`

	Housekeeping struct {
		Interval  string `yaml:"interval"`
		Retention string `yaml:"retention"`
	} `yaml:"housekeeping"`
}

// LoadConfig builds the runtime configuration. An optional YAML file
// (TRACKER_CONFIG_FILE, default ./config.yaml if present) provides the
// base; environment variables always win. ${VAR} placeholders in the
// file are substituted from the environment before parsing.
func LoadConfig() (Config, error) {
	cfg := Config{
		Issuer:               getEnvOrDefault("TRACKER_ISSUER", "clockin-tracker"),
		JWTSecret:            os.Getenv("TRACKER_JWT_SECRET"),
		AccessTTL:            getEnvDurationOrDefault("TRACKER_ACCESS_TTL", 12*time.Hour),
		DBDriver:             getEnvOrDefault("TRACKER_DB_DRIVER", "sqlite"),
		DatabaseFile:         getEnvOrDefault("TRACKER_DATABASE_FILE", "tracker.db"),
		DatabaseURL:          os.Getenv("TRACKER_DATABASE_URL"),
		PepperFile:           getEnvOrDefault("TRACKER_PEPPER_FILE", "pepper"),
		AdminUsername:        getEnvOrDefault("TRACKER_ADMIN_USERNAME", "admin"),
		AdminPassword:        os.Getenv("TRACKER_ADMIN_PASSWORD"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		WatchdogInterval:     getEnvDurationOrDefault("TRACKER_WATCHDOG_INTERVAL", time.Minute),
		IdleAfter:            getEnvDurationOrDefault("TRACKER_IDLE_AFTER", 10*time.Minute),
		CheckoutAfter:        getEnvDurationOrDefault("TRACKER_CHECKOUT_AFTER", 0),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		LogRetention:         getEnvDurationOrDefault("TRACKER_LOG_RETENTION", 0),
	}

	if err := applyConfigFile(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("TRACKER_DATABASE_URL is required for the postgres driver")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("TRACKER_JWT_SECRET is required")
	}

	return cfg, nil
}

// applyConfigFile merges the optional YAML file into cfg. Only fields
// the environment left at their defaults or empty are touched where the
// value is required; string fields from the file fill gaps only.
func applyConfigFile(cfg *Config) error {
	path := os.Getenv("TRACKER_CONFIG_FILE")
	optional := path == ""
	if optional {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	// Replace environment variables in the YAML content
	content := string(data)
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		placeholder := "${" + pair[0] + "}"
		content = strings.ReplaceAll(content, placeholder, pair[1])
	}

	var fc fileConfig
	if err := yaml.Unmarshal([]byte(content), &fc); err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	setIfEmptyEnv(&cfg.Issuer, "TRACKER_ISSUER", fc.Issuer)
	setIfEmptyEnv(&cfg.Env, "ENV", fc.Env)
	setIfEmptyEnv(&cfg.LogLevel, "LOG_LEVEL", fc.Log.Level)
	setIfEmptyEnv(&cfg.LogFormat, "LOG_FORMAT", fc.Log.Format)
	setIfEmptyEnv(&cfg.JWTSecret, "TRACKER_JWT_SECRET", fc.Auth.JWTSecret)
	setIfEmptyEnv(&cfg.PepperFile, "TRACKER_PEPPER_FILE", fc.Auth.PepperFile)
	setIfEmptyEnv(&cfg.DBDriver, "TRACKER_DB_DRIVER", fc.Database.Driver)
	setIfEmptyEnv(&cfg.DatabaseFile, "TRACKER_DATABASE_FILE", fc.Database.File)
	setIfEmptyEnv(&cfg.DatabaseURL, "TRACKER_DATABASE_URL", fc.Database.URL)
	setIfEmptyEnv(&cfg.AdminUsername, "TRACKER_ADMIN_USERNAME", fc.Admin.Username)
	setIfEmptyEnv(&cfg.AdminPassword, "TRACKER_ADMIN_PASSWORD", fc.Admin.Password)

	if fc.Port != 0 && os.Getenv("PORT") == "" {
		cfg.Port = fc.Port
	}
	setDurationIfEmptyEnv(&cfg.AccessTTL, "TRACKER_ACCESS_TTL", fc.Auth.AccessTTL)
	setDurationIfEmptyEnv(&cfg.WatchdogInterval, "TRACKER_WATCHDOG_INTERVAL", fc.Watchdog.Interval)
	setDurationIfEmptyEnv(&cfg.IdleAfter, "TRACKER_IDLE_AFTER", fc.Watchdog.IdleAfter)
	setDurationIfEmptyEnv(&cfg.CheckoutAfter, "TRACKER_CHECKOUT_AFTER", fc.Watchdog.CheckoutAfter)
	setDurationIfEmptyEnv(&cfg.HousekeepingInterval, "HOUSEKEEPING_INTERVAL", fc.Housekeeping.Interval)
	setDurationIfEmptyEnv(&cfg.LogRetention, "TRACKER_LOG_RETENTION", fc.Housekeeping.Retention)

	return nil
}

func setIfEmptyEnv(dst *string, envKey, fileValue string) {
	if fileValue != "" && os.Getenv(envKey) == "" {
		*dst = fileValue
	}
}

func setDurationIfEmptyEnv(dst *time.Duration, envKey, fileValue string) {
	if fileValue == "" || os.Getenv(envKey) != "" {
		return
	}
	if d, err := time.ParseDuration(fileValue); err == nil {
		*dst = d
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
