package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at process start and passed to constructors.
// Nothing mutates it afterwards.
type Config struct {
	Environment string
	LogLevel    slog.Level
	Server      ServerConfig
	Tables      TablesConfig
	Signals     SignalsConfig
	Analytics   AnalyticsConfig
	Webhook     WebhookConfig
	FanOut      FanOutConfig
}

type ServerConfig struct {
	Port int
}

type TablesConfig struct {
	Transactions string
	Merchants    string
	Processors   string
}

type SignalsConfig struct {
	WebhookQueueURL string
	SyncTopicARN    string
}

type AnalyticsConfig struct {
	Streams []string
}

type WebhookConfig struct {
	WebCheckoutURL string
	Timeout        time.Duration
}

// FanOutConfig sets which non-webhook targets fail a change event.
type FanOutConfig struct {
	SyncRequired      bool
	AnalyticsRequired bool
}

// Requirement selects the settings an entrypoint cannot run without.
type Requirement int

const (
	NeedTables Requirement = 1 << iota
	NeedSignals
	NeedAnalytics
)

// Load reads a .env file when present, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	v.SetDefault("app_env", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_port", 8080)
	v.SetDefault("webhook_timeout_ms", 10000)
	v.SetDefault("fanout_sync_required", true)
	v.SetDefault("fanout_analytics_required", false)

	port := v.GetInt("http_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid HTTP_PORT: %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v.GetString("log_level")))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	timeoutMS := v.GetInt("webhook_timeout_ms")
	if timeoutMS <= 0 {
		timeoutMS = 10000
	}

	return Config{
		Environment: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		LogLevel:    level,
		Server:      ServerConfig{Port: port},
		Tables: TablesConfig{
			Transactions: strings.TrimSpace(v.GetString("dynamodb_transactions_table_name")),
			Merchants:    strings.TrimSpace(v.GetString("dynamodb_merchants_table_name")),
			Processors:   strings.TrimSpace(v.GetString("dynamodb_processors_table_name")),
		},
		Signals: SignalsConfig{
			WebhookQueueURL: strings.TrimSpace(v.GetString("webhook_queue_url")),
			SyncTopicARN:    strings.TrimSpace(v.GetString("sync_topic_arn")),
		},
		Analytics: AnalyticsConfig{
			Streams: splitList(v.GetString("analytics_streams")),
		},
		Webhook: WebhookConfig{
			WebCheckoutURL: strings.TrimSpace(v.GetString("webcheckout_webhook_url")),
			Timeout:        time.Duration(timeoutMS) * time.Millisecond,
		},
		FanOut: FanOutConfig{
			SyncRequired:      v.GetBool("fanout_sync_required"),
			AnalyticsRequired: v.GetBool("fanout_analytics_required"),
		},
	}, nil
}

// Validate reports every missing setting the entrypoint needs.
func (c Config) Validate(need Requirement) error {
	var errs []error
	missing := func(name, value string) {
		if value == "" {
			errs = append(errs, fmt.Errorf("%s is not set", name))
		}
	}

	if need&NeedTables != 0 {
		missing("DYNAMODB_TRANSACTIONS_TABLE_NAME", c.Tables.Transactions)
		missing("DYNAMODB_MERCHANTS_TABLE_NAME", c.Tables.Merchants)
		missing("DYNAMODB_PROCESSORS_TABLE_NAME", c.Tables.Processors)
	}
	if need&NeedSignals != 0 {
		missing("WEBHOOK_QUEUE_URL", c.Signals.WebhookQueueURL)
		missing("SYNC_TOPIC_ARN", c.Signals.SyncTopicARN)
	}
	if need&NeedAnalytics != 0 && len(c.Analytics.Streams) == 0 {
		errs = append(errs, errors.New("ANALYTICS_STREAMS is not set"))
	}

	return errors.Join(errs...)
}

// IsLocalDevelopment reports whether the process runs outside a deployed tier.
func (c Config) IsLocalDevelopment() bool {
	switch c.Environment {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
