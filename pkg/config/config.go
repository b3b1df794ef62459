package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AppConfig struct {
	RDS    *redis.Client
	ORM    *gorm.DB
	Logger *logrus.Logger

	RootWorkingDir string

	Client             ClientInfo         `yaml:"client"`
	LogSettings        LogSettings        `yaml:"log_settings"`
	DatabaseInfo       DatabaseInfo       `yaml:"database_info"`
	RedisInfo          RedisInfo          `yaml:"redis_info"`
	UploadFileSettings UploadFileSettings `yaml:"upload_file_settings"`
	SecurityTokens     SecurityTokens     `yaml:"security_tokens"`
	RateLimit          RateLimitInfo      `yaml:"rate_limit"`
	Recognition        RecognitionInfo    `yaml:"recognition"`
	Milvus             MilvusInfo         `yaml:"milvus"`
}

type ClientInfo struct {
	Port           int            `yaml:"port"`
	Debug          bool           `yaml:"debug"`
	BaseUrl        string         `yaml:"base_url"`
	JwtSecret      string         `yaml:"jwt_secret"`
	TokenValidity  *time.Duration `yaml:"token_validity"`
	ProxyHeader    string         `yaml:"proxy_header"`
	PrometheusConf PrometheusConf `yaml:"prometheus"`
}

type PrometheusConf struct {
	Enable      bool   `yaml:"enable"`
	MetricsPath string `yaml:"metrics_path"`
}

type LogSettings struct {
	LogFile    string  `yaml:"log_file"`
	MaxSize    int     `yaml:"max_size"`
	MaxBackups int     `yaml:"max_backups"`
	MaxAge     int     `yaml:"max_age"`
	LogLevel   *string `yaml:"log_level"`
}

type DatabaseInfo struct {
	Host            string          `yaml:"host"`
	Port            int32           `yaml:"port"`
	Username        string          `yaml:"username"`
	Password        string          `yaml:"password"`
	DBName          string          `yaml:"db"`
	Charset         *string         `yaml:"charset"`
	Loc             *string         `yaml:"loc"`
	ConnMaxLifetime *time.Duration  `yaml:"conn_max_lifetime"`
	MaxOpenConns    *int            `yaml:"max_open_conns"`
	Replicas        []ReplicaDBInfo `yaml:"replicas"`
}

// ReplicaDBInfo holds connection details for a read replica database.
type ReplicaDBInfo struct {
	Host     string `yaml:"host"`
	Port     int32  `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RedisInfo struct {
	Host              string   `yaml:"host"`
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	DBName            int      `yaml:"db"`
	UseTLS            bool     `yaml:"use_tls"`
	MasterName        string   `yaml:"sentinel_master_name"`
	SentinelUsername  string   `yaml:"sentinel_username"`
	SentinelPassword  string   `yaml:"sentinel_password"`
	SentinelAddresses []string `yaml:"sentinel_addresses"`
}

type UploadFileSettings struct {
	Path         string   `yaml:"path"`
	MaxSize      uint64   `yaml:"max_size"`
	AllowedTypes []string `yaml:"allowed_types"`
	// OrphanMaxAge is how long an uploaded file may stay on disk without
	// a database row pointing at it before the janitor removes it.
	OrphanMaxAge *time.Duration `yaml:"orphan_max_age"`
}

// SecurityTokens holds the static bearer tokens, grouped by purpose.
// Each list can be overridden with a comma-separated environment
// variable (REGISTRATION_TOKENS, ADMIN_TOKENS, SENSITIVE_TOKENS,
// GENERAL_TOKENS).
type SecurityTokens struct {
	Registration []string `yaml:"registration"`
	Admin        []string `yaml:"admin"`
	Sensitive    []string `yaml:"sensitive"`
	General      []string `yaml:"general"`
}

type RateLimitInfo struct {
	Enable     bool           `yaml:"enable"`
	Max        int            `yaml:"max"`
	Expiration *time.Duration `yaml:"expiration"`
}

type RecognitionInfo struct {
	Enabled        bool           `yaml:"enabled"`
	Url            string         `yaml:"url"`
	ProjectId      string         `yaml:"project_id"`
	RequestTimeout *time.Duration `yaml:"request_timeout"`
	MaxRetries     *int           `yaml:"max_retries"`
	RetryDelay     *time.Duration `yaml:"retry_delay"`
}

type MilvusInfo struct {
	Host     string `yaml:"host"`
	Token    string `yaml:"token"`
	Database string `yaml:"database"`
}

var appCnf *AppConfig

// New sets defaults, prepares the upload directory and makes the config
// available globally.
func New(cnf *AppConfig) (*AppConfig, error) {
	// HS256 in go-jose refuses keys shorter than the hash size
	if len(cnf.Client.JwtSecret) < 32 {
		return nil, fmt.Errorf("client.jwt_secret must be at least 32 characters, got %d", len(cnf.Client.JwtSecret))
	}

	if cnf.Client.TokenValidity == nil || *cnf.Client.TokenValidity <= 0 {
		validity := DefaultTokenValidity
		cnf.Client.TokenValidity = &validity
	}

	if cnf.UploadFileSettings.Path == "" {
		cnf.UploadFileSettings.Path = "./files"
	}
	p := cnf.UploadFileSettings.Path
	if strings.HasPrefix(p, "./") {
		p = filepath.Join(cnf.RootWorkingDir, p)
		cnf.UploadFileSettings.Path = p
	}
	if _, err := os.Stat(p); os.IsNotExist(err) {
		if err = os.MkdirAll(p, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", p, err)
		}
	}
	if cnf.UploadFileSettings.MaxSize == 0 {
		cnf.UploadFileSettings.MaxSize = 10 // MB
	}
	if cnf.UploadFileSettings.OrphanMaxAge == nil {
		d := time.Hour * 24
		cnf.UploadFileSettings.OrphanMaxAge = &d
	}

	if cnf.RateLimit.Max == 0 {
		cnf.RateLimit.Max = 100
	}
	if cnf.RateLimit.Expiration == nil {
		d := time.Minute
		cnf.RateLimit.Expiration = &d
	}

	cnf.SecurityTokens.applyEnvOverrides()

	appCnf = cnf
	return cnf, nil
}

func GetConfig() *AppConfig {
	return appCnf
}

func (t *SecurityTokens) applyEnvOverrides() {
	if v := os.Getenv("REGISTRATION_TOKENS"); v != "" {
		t.Registration = splitTokens(v)
	}
	if v := os.Getenv("ADMIN_TOKENS"); v != "" {
		t.Admin = splitTokens(v)
	}
	if v := os.Getenv("SENSITIVE_TOKENS"); v != "" {
		t.Sensitive = splitTokens(v)
	}
	if v := os.Getenv("GENERAL_TOKENS"); v != "" {
		t.General = splitTokens(v)
	}
}

// ByPurpose returns the token list for the given purpose. Unknown
// purposes resolve to an empty list, which rejects everything.
func (t *SecurityTokens) ByPurpose(purpose string) []string {
	switch purpose {
	case TokenPurposeRegistration:
		return t.Registration
	case TokenPurposeAdmin:
		return t.Admin
	case TokenPurposeSensitive:
		return t.Sensitive
	case TokenPurposeGeneral:
		return t.General
	}
	return nil
}

func splitTokens(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
