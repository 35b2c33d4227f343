package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"letsdraw/internal/game"
)

var keys = []string{
	"PORT", "STATIC_DIR", "LOG_LEVEL", "LOG_FORMAT", "ROUND_SECONDS", "MAX_ROUNDS",
	"GUESS_POINTS", "WORD_CHOICES", "NEXT_TURN_DELAY", "CLIENT_RATE", "CLIENT_BURST",
	"NATS_URL", "NATS_SUBJECT_PREFIX", "CONSUL_HTTP_ADDR", "SERVICE_NAME", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, game.DefaultRules(), cfg.Rules)
	assert.Equal(t, 20.0, cfg.ClientRate)
	assert.Equal(t, 60, cfg.ClientBurst)
	assert.Equal(t, "letsdraw.rooms", cfg.NATSSubjectPrefix)
	assert.Equal(t, "letsdraw-coordinator", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.NATSURL)
	assert.Empty(t, cfg.ConsulAddr)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("ROUND_SECONDS", "60")
	t.Setenv("MAX_ROUNDS", "3")
	t.Setenv("NEXT_TURN_DELAY", "500ms")
	t.Setenv("CLIENT_RATE", "2.5")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 60, cfg.Rules.RoundSeconds)
	assert.Equal(t, 3, cfg.Rules.MaxRounds)
	assert.Equal(t, 500*time.Millisecond, cfg.Rules.NextTurnDelay)
	assert.Equal(t, 2.5, cfg.ClientRate)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]string{
		"PORT":             "abc",
		"ROUND_SECONDS":    "0",
		"MAX_ROUNDS":       "-1",
		"NEXT_TURN_DELAY":  "soon",
		"CLIENT_RATE":      "fast",
		"SHUTDOWN_TIMEOUT": "-1s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())

	require.NoError(t, SetupLogger("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, SetupLogger("loud", "text"))
	assert.Error(t, SetupLogger("info", "xml"))
}
