package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	LLM     LLMConfig
	DB      DBConfig
	S3      S3Config
	Upload  UploadConfig
	Session SessionConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// GinMode returns the gin engine mode. Production always runs in release mode;
// elsewhere only the debug level turns on gin's route and debug output.
func (c *Config) GinMode() string {
	if c.Server.Environment == "production" {
		return gin.ReleaseMode
	}
	if strings.EqualFold(c.Log.Level, "debug") {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}

// ProviderConfig holds settings for a single language model provider.
type ProviderConfig struct {
	Provider        string `mapstructure:"provider"`
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`
}

// LLMConfig holds language model settings. The flat fields describe a single
// provider; Primary/Secondary/Tertiary enable provider failover.
type LLMConfig struct {
	Provider        string `mapstructure:"provider"`
	APIKey          string `mapstructure:"api_key"`
	DefaultModel    string `mapstructure:"default_model"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	MaxOutputTokens int    `mapstructure:"max_output_tokens"`

	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
	Tertiary  ProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary provider config, falling back to the flat fields.
func (l *LLMConfig) PrimaryConfig() *ProviderConfig {
	if l.Primary.Provider != "" {
		return &l.Primary
	}
	return &ProviderConfig{
		Provider:        l.Provider,
		APIKey:          l.APIKey,
		DefaultModel:    l.DefaultModel,
		TimeoutSecs:     l.TimeoutSecs,
		MaxOutputTokens: l.MaxOutputTokens,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (l *LLMConfig) SecondaryConfig() *ProviderConfig {
	if l.Secondary.Provider != "" {
		return &l.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (l *LLMConfig) TertiaryConfig() *ProviderConfig {
	if l.Tertiary.Provider != "" {
		return &l.Tertiary
	}
	return nil
}

// Providers returns the configured providers in failover order.
func (l *LLMConfig) Providers() []*ProviderConfig {
	out := []*ProviderConfig{l.PrimaryConfig()}
	if s := l.SecondaryConfig(); s != nil {
		out = append(out, s)
	}
	if t := l.TertiaryConfig(); t != nil {
		out = append(out, t)
	}
	return out
}

// DBConfig holds PostgreSQL connection settings for the analysis history.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds the bucket used to publish exported reports.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether a report bucket is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// SessionConfig holds in-memory session limits.
type SessionConfig struct {
	MaxSessions int `mapstructure:"max_sessions"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the LEGALYZE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEGALYZE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")

	// LLM defaults (flat)
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.default_model", "gemini-2.5-flash")
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("llm.max_output_tokens", 8192)

	// LLM failover defaults
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("llm."+tier+".provider", "")
		v.SetDefault("llm."+tier+".api_key", "")
		v.SetDefault("llm."+tier+".default_model", "")
		v.SetDefault("llm."+tier+".timeout_secs", 120)
		v.SetDefault("llm."+tier+".max_output_tokens", 8192)
	}

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "legalyze")
	v.SetDefault("db.password", "legalyze_secret")
	v.SetDefault("db.name", "legalyze_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults (empty bucket disables report publishing)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("session.max_sessions", 100)

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "LEGALYZE_SERVER_PORT",
		"server.read_timeout":     "LEGALYZE_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "LEGALYZE_SERVER_WRITE_TIMEOUT",
		"server.environment":      "LEGALYZE_SERVER_ENVIRONMENT",
		"log.level":               "LEGALYZE_LOG_LEVEL",
		"llm.provider":            "LEGALYZE_LLM_PROVIDER",
		"llm.api_key":             "LEGALYZE_LLM_API_KEY",
		"llm.default_model":       "LEGALYZE_LLM_DEFAULT_MODEL",
		"llm.timeout_secs":        "LEGALYZE_LLM_TIMEOUT_SECS",
		"llm.max_output_tokens":   "LEGALYZE_LLM_MAX_OUTPUT_TOKENS",
		"db.enabled":              "LEGALYZE_DB_ENABLED",
		"db.host":                 "LEGALYZE_DB_HOST",
		"db.port":                 "LEGALYZE_DB_PORT",
		"db.user":                 "LEGALYZE_DB_USER",
		"db.password":             "LEGALYZE_DB_PASSWORD",
		"db.name":                 "LEGALYZE_DB_NAME",
		"db.sslmode":              "LEGALYZE_DB_SSLMODE",
		"db.max_open":             "LEGALYZE_DB_MAX_OPEN",
		"db.max_idle":             "LEGALYZE_DB_MAX_IDLE",
		"s3.region":               "LEGALYZE_S3_REGION",
		"s3.bucket":               "LEGALYZE_S3_BUCKET",
		"s3.endpoint":             "LEGALYZE_S3_ENDPOINT",
		"s3.access_key":           "LEGALYZE_S3_ACCESS_KEY",
		"s3.secret_key":           "LEGALYZE_S3_SECRET_KEY",
		"s3.presign_expiry":       "LEGALYZE_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb": "LEGALYZE_UPLOAD_MAX_FILE_SIZE_MB",
		"session.max_sessions":    "LEGALYZE_SESSION_MAX_SESSIONS",
		"cors.allowed_origins":    "LEGALYZE_CORS_ALLOWED_ORIGINS",
	}
	for _, tier := range []string{"primary", "secondary", "tertiary"} {
		prefix := "LEGALYZE_LLM_" + strings.ToUpper(tier) + "_"
		envBindings["llm."+tier+".provider"] = prefix + "PROVIDER"
		envBindings["llm."+tier+".api_key"] = prefix + "API_KEY"
		envBindings["llm."+tier+".default_model"] = prefix + "DEFAULT_MODEL"
		envBindings["llm."+tier+".timeout_secs"] = prefix + "TIMEOUT_SECS"
		envBindings["llm."+tier+".max_output_tokens"] = prefix + "MAX_OUTPUT_TOKENS"
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if LEGALYZE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LEGALYZE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	providerConfig := func(tier string) ProviderConfig {
		return ProviderConfig{
			Provider:        v.GetString("llm." + tier + ".provider"),
			APIKey:          v.GetString("llm." + tier + ".api_key"),
			DefaultModel:    v.GetString("llm." + tier + ".default_model"),
			TimeoutSecs:     v.GetInt("llm." + tier + ".timeout_secs"),
			MaxOutputTokens: v.GetInt("llm." + tier + ".max_output_tokens"),
		}
	}
	cfg.LLM = LLMConfig{
		Provider:        v.GetString("llm.provider"),
		APIKey:          v.GetString("llm.api_key"),
		DefaultModel:    v.GetString("llm.default_model"),
		TimeoutSecs:     v.GetInt("llm.timeout_secs"),
		MaxOutputTokens: v.GetInt("llm.max_output_tokens"),
		Primary:         providerConfig("primary"),
		Secondary:       providerConfig("secondary"),
		Tertiary:        providerConfig("tertiary"),
	}

	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Session = SessionConfig{
		MaxSessions: v.GetInt("session.max_sessions"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Upload.MaxFileSizeMB <= 0 {
		return nil, fmt.Errorf("upload.max_file_size_mb must be positive, got %d", cfg.Upload.MaxFileSizeMB)
	}

	return cfg, nil
}
