package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Amadeus  AmadeusConfig  `yaml:"amadeus"`
	Mail     MailConfig     `yaml:"mail"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// Seconds a cached dashboard listing stays valid.
	RequestsCacheTTL int `yaml:"requests_cache_ttl_seconds"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	RequestEventsTopic string   `yaml:"request_events_topic"`
}

type AmadeusConfig struct {
	BaseURL      string `yaml:"base_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	TimeoutSec   int    `yaml:"timeout_seconds"`
}

type MailConfig struct {
	From              string `yaml:"from"`
	GmailClientID     string `yaml:"gmail_client_id"`
	GmailClientSecret string `yaml:"gmail_client_secret"`
	GmailRefreshToken string `yaml:"gmail_refresh_token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig reads the yaml config file, then overlays secrets from the
// environment (a .env file is honored when present) so credentials never
// have to live in the config file.
func LoadConfig(path string) (*Config, error) {
	godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	overlayEnv(&cfg.Amadeus.ClientID, "AMADEUS_CLIENT_ID")
	overlayEnv(&cfg.Amadeus.ClientSecret, "AMADEUS_CLIENT_SECRET")
	overlayEnv(&cfg.Amadeus.BaseURL, "AMADEUS_BASE_URL")
	overlayEnv(&cfg.Mail.GmailClientID, "GMAIL_CLIENT_ID")
	overlayEnv(&cfg.Mail.GmailClientSecret, "GMAIL_CLIENT_SECRET")
	overlayEnv(&cfg.Mail.GmailRefreshToken, "GMAIL_REFRESH_TOKEN")
	overlayEnv(&cfg.Database.Password, "DATABASE_PASSWORD")
	overlayEnv(&cfg.Redis.Password, "REDIS_PASSWORD")

	return &cfg, nil
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
