package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	env := map[string]string{
		"NAME":    "  portfolio ",
		"BLANK":   "   ",
		"NUM":     " 12 ",
		"BAD_NUM": "twelve",
		"FLAG":    "true",
		"LIST":    "a, b,,c ,",
	}

	assert.Equal(t, "portfolio", GetString(env, "NAME", "x"))
	assert.Equal(t, "x", GetString(env, "BLANK", "x"))
	assert.Equal(t, "x", GetString(nil, "NAME", "x"))

	assert.Equal(t, 12, GetInt(env, "NUM", 1))
	assert.Equal(t, 1, GetInt(env, "BAD_NUM", 1))
	assert.Equal(t, 1, GetInt(env, "MISSING", 1))

	assert.True(t, GetBool(env, "FLAG", false))
	assert.False(t, GetBool(env, "MISSING", false))

	assert.Equal(t, []string{"a", "b", "c"}, GetList(env, "LIST"))
	assert.Nil(t, GetList(env, "MISSING"))
}

func TestSplit(t *testing.T) {
	key, value := split("DB_DSN=host=localhost user=app")
	assert.Equal(t, "DB_DSN", key)
	assert.Equal(t, "host=localhost user=app", value)

	key, value = split("EMPTY")
	assert.Equal(t, "EMPTY", key)
	assert.Equal(t, "", value)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DBTypeSQLite, cfg.DBType)
	assert.Equal(t, "portfolio.db", cfg.DBDSN)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, "portfolio-api", cfg.JWTIssuer)
	assert.Equal(t, "portfolio-manager", cfg.JWTAudience)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
	assert.NotEmpty(t, cfg.AcceptedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.SeedData)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(map[string]string{
		"PORT":                "9000",
		"APP_ENV":             "production",
		"DB_TYPE":             "Postgres",
		"DB_DSN":              "host=db user=app",
		"DB_REPLICA_DSNS":     "host=r1,host=r2",
		"JWT_TTL_MINUTES":     "15",
		"ACCEPTED_ORIGINS":    "https://admin.example.com",
		"SEED_REFERENCE_DATA": "1",
	})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DBTypePostgres, cfg.DBType)
	assert.Equal(t, []string{"host=r1", "host=r2"}, cfg.ReplicaDSNs)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://admin.example.com"}, cfg.AcceptedOrigins)
	assert.True(t, cfg.SeedData)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown db type", map[string]string{"DB_TYPE": "oracle"}},
		{"non-positive ttl", map[string]string{"JWT_TTL_MINUTES": "0"}},
		{"non-positive login rate", map[string]string{"LOGIN_RATE_PER_MINUTE": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.env)
			assert.Error(t, err)
		})
	}
}

func TestValidateSecret(t *testing.T) {
	assert.Error(t, AppConfig{}.ValidateSecret())
	assert.Error(t, AppConfig{JWTSecret: "too-short"}.ValidateSecret())
	assert.NoError(t, AppConfig{JWTSecret: "0123456789abcdef0123456789abcdef"}.ValidateSecret())
}
