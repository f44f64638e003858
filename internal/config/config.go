package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	LogLevel string `yaml:"log_level"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type TokenStoreConfig struct {
	Backend     string `yaml:"backend"` // "file" or "redis"
	Dir         string `yaml:"dir"`
	ServiceName string `yaml:"service_name"`
	Passphrase  string `yaml:"passphrase"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ReportConfig struct {
	CachePath          string `yaml:"cache_path"`
	CompleteClearDelay string `yaml:"complete_clear_delay"`
}

type ImageConfig struct {
	MaxBytes int64 `yaml:"max_bytes"`
}

type NotificationsConfig struct {
	PollInterval string `yaml:"poll_interval"`
	SMSEnabled   bool   `yaml:"sms_enabled"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
	ToNumber   string `yaml:"to_number"`
}

type ConfigFile struct {
	App           AppConfig           `yaml:"app"`
	API           APIConfig           `yaml:"api"`
	TokenStore    TokenStoreConfig    `yaml:"token_store"`
	Redis         RedisConfig         `yaml:"redis"`
	Report        ReportConfig        `yaml:"report"`
	Image         ImageConfig         `yaml:"image"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Twilio        TwilioConfig        `yaml:"twilio"`
}

type Config struct {
	LogLevel string

	APIBaseURL string
	APITimeout time.Duration

	TokenStoreBackend string
	TokenStoreDir     string
	TokenServiceName  string
	TokenPassphrase   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	ReportCachePath    string
	CompleteClearDelay time.Duration

	ImageMaxBytes int64

	NotifyPollInterval time.Duration
	SMSEnabled         bool
	TwilioSID          string
	TwilioToken        string
	TwilioFrom         string
	TwilioTo           string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFrom(env("CONFIG_FILE", "config/config.yml"))
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	apiTimeout, err := duration(configFile.API.Timeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}
	clearDelay, err := duration(configFile.Report.CompleteClearDelay, 3*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid report complete clear delay: %w", err)
	}
	pollInterval, err := duration(configFile.Notifications.PollInterval, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid notification poll interval: %w", err)
	}

	cfg := &Config{
		LogLevel: configFile.App.LogLevel,

		APIBaseURL: env("API_BASE_URL", configFile.API.BaseURL),
		APITimeout: apiTimeout,

		TokenStoreBackend: configFile.TokenStore.Backend,
		TokenStoreDir:     configFile.TokenStore.Dir,
		TokenServiceName:  configFile.TokenStore.ServiceName,
		TokenPassphrase:   env("TOKEN_PASSPHRASE", configFile.TokenStore.Passphrase),

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		ReportCachePath:    configFile.Report.CachePath,
		CompleteClearDelay: clearDelay,

		ImageMaxBytes: configFile.Image.MaxBytes,

		NotifyPollInterval: pollInterval,
		SMSEnabled:         configFile.Notifications.SMSEnabled,
		TwilioSID:          env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:        env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:         env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		TwilioTo:           env("TWILIO_TO_NUMBER", configFile.Twilio.ToNumber),
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api base_url is required")
	}
	if cfg.TokenStoreBackend == "" {
		cfg.TokenStoreBackend = "file"
	}
	if cfg.TokenServiceName == "" {
		cfg.TokenServiceName = "baraya"
	}
	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// duration parses a config duration, substituting def when the value is empty.
func duration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	return time.ParseDuration(raw)
}
