package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/opsdesk/ticketera/internal/errs"
)

const (
	BackendGoogle = "google"
	BackendXLSX   = "xlsx"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// SecretsFile holds the credential map and, for the google backend, the
	// service-account key (TOML, same shape as the original deployment's
	// secrets file).
	SecretsFile string

	SheetBackend  string
	SpreadsheetID string
	WorkbookPath  string
	HistoryLimit  int

	// KafkaBrokers/KafkaTopicTicket — if set, a ticket.saved event is emitted
	// after each append (best-effort).
	KafkaBrokers     []string
	KafkaTopicTicket string

	// NotifyURL — if set, each saved record is POSTed there (best-effort).
	NotifyURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:          getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort:         firstEnv("APP_PORT", "HTTP_PORT", "8094"),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SecretsFile:      getEnv("SECRETS_FILE", "secrets.toml"),
		SheetBackend:     getEnv("SHEET_BACKEND", BackendGoogle),
		SpreadsheetID:    getEnv("SPREADSHEET_ID", ""),
		WorkbookPath:     getEnv("WORKBOOK_PATH", "ticketera.xlsx"),
		HistoryLimit:     getEnvInt("HISTORY_LIMIT", 15),
		KafkaTopicTicket: getEnv("KAFKA_TOPIC_TICKET", ""),
		NotifyURL:        getEnv("NOTIFY_URL", ""),
	}
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitBrokers(brokers)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.SheetBackend {
	case BackendGoogle:
		if c.SpreadsheetID == "" {
			return &errs.ConfigError{Reason: "SPREADSHEET_ID is required for the google backend"}
		}
	case BackendXLSX:
		if c.WorkbookPath == "" {
			return &errs.ConfigError{Reason: "WORKBOOK_PATH is required for the xlsx backend"}
		}
	default:
		return &errs.ConfigError{Reason: fmt.Sprintf("unknown SHEET_BACKEND %q", c.SheetBackend)}
	}
	if c.HistoryLimit <= 0 {
		return &errs.ConfigError{Reason: "HISTORY_LIMIT must be positive"}
	}
	return nil
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

// Secrets is the content of the secrets file: the operator credential map and
// the Google service-account key. Absence of the credential map is fatal.
type Secrets struct {
	Users map[string]string
	// GoogleCreds is the raw service-account key JSON, rebuilt from the
	// [google_sheets] table.
	GoogleCreds []byte
}

// LoadSecrets reads the TOML secrets file. Shape:
//
//	[users]
//	alice = "s3cret"
//
//	[google_sheets]
//	type = "service_account"
//	private_key = "..."
//	...
func LoadSecrets(path string) (*Secrets, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, &errs.ConfigError{Reason: fmt.Sprintf("read secrets file %s: %v", path, err)}
	}
	users := v.GetStringMapString("users")
	if len(users) == 0 {
		return nil, &errs.ConfigError{Reason: "secrets file has no [users] entries"}
	}
	s := &Secrets{Users: users}
	if creds := v.GetStringMap("google_sheets"); len(creds) > 0 {
		raw, err := json.Marshal(creds)
		if err != nil {
			return nil, &errs.ConfigError{Reason: fmt.Sprintf("encode google_sheets credentials: %v", err)}
		}
		s.GoogleCreds = raw
	}
	return s, nil
}

func splitBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
