// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig         `mapstructure:"app"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Queue        QueueConfig       `mapstructure:"queue"`
	NLU          NLUConfig         `mapstructure:"nlu"`
	Integrations IntegrationConfig `mapstructure:"integrations"`
	Ingest       IngestConfig      `mapstructure:"ingest"`
	Session      SessionConfig     `mapstructure:"session"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address      string `mapstructure:"address"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int    `mapstructure:"write_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QueueConfig selects and configures the fulfillment queue transport.
type QueueConfig struct {
	Driver string           `mapstructure:"driver"` // "redis" or "sqs"
	Redis  RedisQueueConfig `mapstructure:"redis"`
	SQS    SQSQueueConfig   `mapstructure:"sqs"`
}

type RedisQueueConfig struct {
	Key string `mapstructure:"key"` // base list key; ":processing" is appended for in-flight messages
}

type SQSQueueConfig struct {
	QueueURL string `mapstructure:"queue_url"`
	Region   string `mapstructure:"region"`
}

// NLUConfig points at the external natural-language runtime.
type NLUConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	BotID     string `mapstructure:"bot_id"`
	BotAlias  string `mapstructure:"bot_alias"`
	LocaleID  string `mapstructure:"locale_id"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
	AuthToken string `mapstructure:"auth_token"`
}

// IntegrationConfig holds settings for email/SMS delivery providers.
type IntegrationConfig struct {
	Delivery struct {
		Channel string `mapstructure:"channel"` // "ses", "smtp" or "sns"
	} `mapstructure:"delivery"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`

	SMTP struct {
		Host        string `mapstructure:"host"`
		Port        int    `mapstructure:"port"`
		Username    string `mapstructure:"username"`
		Password    string `mapstructure:"password"`
		UseTLS      bool   `mapstructure:"use_tls"`
		DefaultFrom string `mapstructure:"default_from"`
	} `mapstructure:"smtp"`
}

// IngestConfig holds settings for the one-shot directory ingestion job.
type IngestConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Location       string `mapstructure:"location"`
	PageSize       int    `mapstructure:"page_size"`
	PerCategoryCap int    `mapstructure:"per_category_cap"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds
}

// SessionConfig controls the session-attribute store retention.
type SessionConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
