package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
}

type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`
	TokenTTLHours int64  `mapstructure:"token_ttl_hours"`
}

type OllamaConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

func (o OllamaConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSecs) * time.Second
}

type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

func (g GeminiConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// EnginesConfig drives the AI engine router: which engine is preferred,
// whether fallback is allowed, and how each backend is reached.
type EnginesConfig struct {
	Preferred       string       `mapstructure:"preferred"`
	FallbackEnabled bool         `mapstructure:"fallback_enabled"`
	Ollama          OllamaConfig `mapstructure:"ollama"`
	Gemini          GeminiConfig `mapstructure:"gemini"`
}

type Settings struct {
	Env     string        `mapstructure:"env"`
	Debug   bool          `mapstructure:"debug"`
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"database"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Engines EnginesConfig `mapstructure:"engines"`
}

// Load reads config_<env>.yaml from the working directory, layered under
// environment variables (CAREERFORGE_ENGINES_GEMINI_API_KEY and friends).
// A missing file is fine; defaults plus environment carry a dev setup.
func Load() (*Settings, error) {
	viper.SetConfigName("config_" + genEnv())
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("careerforge")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func setDefaults() {
	viper.SetDefault("env", "dev")
	viper.SetDefault("debug", false)
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.pool_size", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("engines.preferred", "ollama")
	viper.SetDefault("engines.fallback_enabled", true)
	viper.SetDefault("engines.ollama.base_url", "http://localhost:11434")
	viper.SetDefault("engines.ollama.model", "llama3.1:8b")
	viper.SetDefault("engines.ollama.timeout_secs", 30)
	viper.SetDefault("engines.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("engines.gemini.timeout_secs", 30)
}

func genEnv() string {
	env := viper.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
