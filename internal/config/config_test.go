package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("PORT", "")
	t.Setenv("SWEEP_SCHEDULE", "")

	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "0 0 * * *", cfg.SweepSchedule)
	assert.Equal(t, 10, cfg.BodyLimitMB)
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("BODY_LIMIT_MB", "not-a-number")
	t.Setenv("ADMIN_EMAILS", " root@foro.dev , ,ops@foro.dev")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BodyLimitMB)
	assert.Equal(t, []string{"root@foro.dev", "ops@foro.dev"}, cfg.AdminEmails)
	assert.True(t, cfg.IsAdminEmail("ROOT@foro.dev"))
	assert.False(t, cfg.IsAdminEmail("someone@foro.dev"))
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "foro", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=foro port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
