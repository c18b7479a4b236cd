package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetList splits a comma separated value, dropping empty entries.
func GetList(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}

const (
	DBTypeSQLite   = "sqlite"
	DBTypePostgres = "postgres"

	minJWTSecretBytes = 32
)

// AppConfig is the typed view of the environment used by the API process.
type AppConfig struct {
	Port         string
	Environment  string
	LogLevel     string
	LogFormat    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DBType       string
	DBDSN        string
	ReplicaDSNs  []string
	SeedData     bool
	GenerateOnly bool

	JWTSecret          string
	JWTSecretSSMParam  string
	JWTIssuer          string
	JWTAudience        string
	JWTTTL             time.Duration
	LoginRatePerMinute int

	AcceptedOrigins []string
}

// Load builds an AppConfig from an environment map as returned by New.
func Load(env map[string]string) (AppConfig, error) {
	cfg := AppConfig{
		Port:         GetString(env, "PORT", "8080"),
		Environment:  GetString(env, "APP_ENV", "development"),
		LogLevel:     GetString(env, "LOG_LEVEL", "info"),
		LogFormat:    GetString(env, "LOG_FORMAT", "console"),
		ReadTimeout:  time.Duration(GetInt(env, "READ_TIMEOUT_SECONDS", 30)) * time.Second,
		WriteTimeout: time.Duration(GetInt(env, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second,
		IdleTimeout:  time.Duration(GetInt(env, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second,

		DBType:       strings.ToLower(GetString(env, "DB_TYPE", DBTypeSQLite)),
		DBDSN:        GetString(env, "DB_DSN", "portfolio.db"),
		ReplicaDSNs:  GetList(env, "DB_REPLICA_DSNS"),
		SeedData:     GetBool(env, "SEED_REFERENCE_DATA", false),
		GenerateOnly: GetBool(env, "GENERATE_MODELS", false),

		JWTSecret:          GetString(env, "JWT_SECRET", ""),
		JWTSecretSSMParam:  GetString(env, "JWT_SECRET_SSM_PARAM", ""),
		JWTIssuer:          GetString(env, "JWT_ISSUER", "portfolio-api"),
		JWTAudience:        GetString(env, "JWT_AUDIENCE", "portfolio-manager"),
		JWTTTL:             time.Duration(GetInt(env, "JWT_TTL_MINUTES", 30)) * time.Minute,
		LoginRatePerMinute: GetInt(env, "LOGIN_RATE_PER_MINUTE", 10),

		AcceptedOrigins: GetList(env, "ACCEPTED_ORIGINS"),
	}

	if len(cfg.AcceptedOrigins) == 0 {
		cfg.AcceptedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks everything except the JWT secret, which may still be
// resolved from SSM after loading.
func (c AppConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.DBType {
	case DBTypeSQLite, DBTypePostgres:
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must be positive")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// ValidateSecret checks the signing secret once it has been resolved.
func (c AppConfig) ValidateSecret() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET or JWT_SECRET_SSM_PARAM is required")
	}
	if len(c.JWTSecret) < minJWTSecretBytes {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}
	return nil
}

func (c AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
