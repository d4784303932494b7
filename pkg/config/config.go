package config

import "time"

// Qsite definition qsite api YAML structure
type Qsite struct {
	Port       string        `mapstructure:"port"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
	JWTSecret  string        `mapstructure:"jwt_secret"`
	CORSOrigin string        `mapstructure:"cors_origin"`

	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	Redis      RedisConfig    `mapstructure:"redis"`
	RabbitMQ   RabbitConfig   `mapstructure:"rabbitmq"`
}

// SMSWorker definition sms_worker YAML structure
type SMSWorker struct {
	PostgreSQL DatabaseConfig `mapstructure:"pg"`
	RabbitMQ   RabbitConfig   `mapstructure:"rabbitmq"`
	Carrier    CarrierConfig  `mapstructure:"carrier"`
	Language   string         `mapstructure:"language"`
}

// RedisConfig definition redis setting
type RedisConfig struct {
	RedisDB int `mapstructure:"redis_db"`
	// Addr 有值時使用單機模式，否則走 sentinel
	Addr string `mapstructure:"addr"`
}

// RabbitConfig definition rabbitmq setting
type RabbitConfig struct {
	IP            string `mapstructure:"ip"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Queue         string `mapstructure:"queue"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}

// CarrierConfig definition sms carrier http api
type CarrierConfig struct {
	URL     string        `mapstructure:"url"`
	APIKey  string        `mapstructure:"api_key"`
	Sender  string        `mapstructure:"sender"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig definition db setting
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Database      string `mapstructure:"database"`
	SSLMode       string `mapstructure:"ssl_mode"`
	RetryInterval int    `mapstructure:"retry_interval"`
	RetryCount    int    `mapstructure:"retry_count"`
}
