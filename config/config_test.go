package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess_Defaults(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.GetServerAddr())
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "America/Guayaquil", cfg.Agenda.Timezone)
	assert.False(t, cfg.Booking.PersistConfirmed)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.False(t, cfg.Twilio.Enabled())
	assert.Equal(t, []string{"http://localhost:3000", "https://rclinic.ec"}, cfg.CORS.Origins())
}

func TestProcess_Overrides(t *testing.T) {
	cfg, err := process(context.Background(), envconfig.MapLookuper(map[string]string{
		"SERVER_PORT":               "9090",
		"STORE_DRIVER":              "postgres",
		"DB_URL":                    "postgres://localhost/rclinic",
		"BOOKING_PERSIST_CONFIRMED": "true",
		"REMINDER_CRON":             "0 9 * * *",
		"TWILIO_ACCOUNT_SID":        "AC123",
		"TWILIO_AUTH_TOKEN":         "token",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Booking.PersistConfirmed)
	assert.Equal(t, "0 9 * * *", cfg.Reminder.Cron)
	assert.True(t, cfg.Twilio.Enabled())
}

func TestProcess_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":  {"STORE_DRIVER": "mongo"},
		"postgres no url": {"STORE_DRIVER": "postgres"},
		"bad time zone":   {"AGENDA_TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := process(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
