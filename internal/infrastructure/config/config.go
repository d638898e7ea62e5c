package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration of the receiving service.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Receiving ReceivingConfig
}

// AppConfig names the service and selects its environment and port.
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds the postgres connection and pool settings. The
// pool must be large enough for concurrent ledger commits from
// different chat users; see max_open_conns.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // minutes
	ConnMaxIdleTime int // minutes
}

// RedisConfig configures the shared save-token store. Disabled by
// default; single-instance deployments dedup save tokens in memory.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// LogConfig selects the logger's level, encoding and destination.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// HTTPConfig holds the server timeouts.
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// ReceivingConfig tunes the receipt-intake workflow.
type ReceivingConfig struct {
	// SaveTokenTTL is how long a processed save token is remembered;
	// within it a replayed save is a no-op instead of a second line.
	SaveTokenTTL time.Duration
}

// Load reads config.toml (working directory or /app), then applies
// WMS_-prefixed environment overrides (WMS_DATABASE_PASSWORD overrides
// database.password), then fills remaining gaps with defaults. A
// missing config file is fine; a config that fails validation is not.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("WMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App:       loadApp(v),
		Database:  loadDatabase(v),
		Redis:     loadRedis(v),
		Log:       loadLog(v),
		HTTP:      loadHTTP(v),
		Receiving: loadReceiving(v),
	}
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(v *viper.Viper) AppConfig {
	return AppConfig{
		Name: v.GetString("app.name"),
		Env:  v.GetString("app.env"),
		Port: v.GetString("app.port"),
	}
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		User:            v.GetString("database.user"),
		Password:        v.GetString("database.password"),
		DBName:          v.GetString("database.dbname"),
		SSLMode:         v.GetString("database.sslmode"),
		MaxOpenConns:    v.GetInt("database.max_open_conns"),
		MaxIdleConns:    v.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
	}
}

func loadRedis(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Host:     v.GetString("redis.host"),
		Port:     v.GetInt("redis.port"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
		Enabled:  v.GetBool("redis.enabled"),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	return HTTPConfig{
		ReadTimeout:    v.GetDuration("http.read_timeout"),
		WriteTimeout:   v.GetDuration("http.write_timeout"),
		IdleTimeout:    v.GetDuration("http.idle_timeout"),
		MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
	}
}

func loadReceiving(v *viper.Viper) ReceivingConfig {
	return ReceivingConfig{
		SaveTokenTTL: v.GetDuration("receiving.save_token_ttl"),
	}
}

// applyDefaults fills every unset field with its development default.
func applyDefaults(cfg *Config) {
	str(&cfg.App.Name, "warehouse-bot")
	str(&cfg.App.Env, "development")
	str(&cfg.App.Port, "8080")

	str(&cfg.Database.Host, "localhost")
	num(&cfg.Database.Port, 5432)
	str(&cfg.Database.User, "postgres")
	str(&cfg.Database.DBName, "warehouse")
	str(&cfg.Database.SSLMode, "disable")
	num(&cfg.Database.MaxOpenConns, 25)
	num(&cfg.Database.MaxIdleConns, 5)
	num(&cfg.Database.ConnMaxLifetime, 60)
	num(&cfg.Database.ConnMaxIdleTime, 30)

	str(&cfg.Redis.Host, "localhost")
	num(&cfg.Redis.Port, 6379)

	str(&cfg.Log.Level, "info")
	str(&cfg.Log.Format, "console")
	str(&cfg.Log.Output, "stdout")

	dur(&cfg.HTTP.ReadTimeout, 15*time.Second)
	dur(&cfg.HTTP.WriteTimeout, 15*time.Second)
	dur(&cfg.HTTP.IdleTimeout, 60*time.Second)
	num(&cfg.HTTP.MaxHeaderBytes, 1<<20)

	dur(&cfg.Receiving.SaveTokenTTL, 24*time.Hour)
}

func str(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func num(field *int, def int) {
	if *field == 0 {
		*field = def
	}
}

func dur(field *time.Duration, def time.Duration) {
	if *field == 0 {
		*field = def
	}
}

// validate rejects configurations that cannot run safely. Production
// deployments carry real supplier and debt figures, so they must not
// run without a database password or with SSL disabled.
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
	}
	return nil
}

// DSN renders the postgres connection URL, escaping credentials.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
