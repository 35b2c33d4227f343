package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"letsdraw/internal/game"
)

// ============================================================================
// Constantes de Configuração Padrão
// ============================================================================
const (
	defaultPort              = 3000
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultClientRate        = 20
	defaultClientBurst       = 60
	defaultNATSSubjectPrefix = "letsdraw.rooms"
	defaultServiceName       = "letsdraw-coordinator"
	defaultShutdownTimeout   = 5 * time.Second
)

// Config armazena todas as configurações da aplicação.
type Config struct {
	Port      int
	StaticDir string

	LogLevel  string
	LogFormat string

	Rules game.Rules

	ClientRate  float64
	ClientBurst int

	NATSURL           string
	NATSSubjectPrefix string

	ConsulAddr  string
	ServiceName string

	ShutdownTimeout time.Duration
}

// Load lê um .env opcional e depois as variáveis de ambiente.
// Variáveis já definidas no ambiente têm precedência sobre o .env.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv carrega a configuração apenas das variáveis de ambiente.
func FromEnv() (*Config, error) {
	rules := game.DefaultRules()
	cfg := &Config{
		StaticDir:         os.Getenv("STATIC_DIR"),
		LogLevel:          envString("LOG_LEVEL", defaultLogLevel),
		LogFormat:         envString("LOG_FORMAT", defaultLogFormat),
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: envString("NATS_SUBJECT_PREFIX", defaultNATSSubjectPrefix),
		ConsulAddr:        os.Getenv("CONSUL_HTTP_ADDR"),
		ServiceName:       envString("SERVICE_NAME", defaultServiceName),
	}

	var err error
	if cfg.Port, err = envInt("PORT", defaultPort); err != nil {
		return nil, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d: must be between 1 and 65535", cfg.Port)
	}
	if rules.RoundSeconds, err = envPositiveInt("ROUND_SECONDS", rules.RoundSeconds); err != nil {
		return nil, err
	}
	if rules.MaxRounds, err = envPositiveInt("MAX_ROUNDS", rules.MaxRounds); err != nil {
		return nil, err
	}
	if rules.GuessPoints, err = envPositiveInt("GUESS_POINTS", rules.GuessPoints); err != nil {
		return nil, err
	}
	if rules.WordChoices, err = envPositiveInt("WORD_CHOICES", rules.WordChoices); err != nil {
		return nil, err
	}
	if rules.NextTurnDelay, err = envDuration("NEXT_TURN_DELAY", rules.NextTurnDelay); err != nil {
		return nil, err
	}
	cfg.Rules = rules

	if cfg.ClientRate, err = envFloat("CLIENT_RATE", defaultClientRate); err != nil {
		return nil, err
	}
	if cfg.ClientBurst, err = envInt("CLIENT_BURST", defaultClientBurst); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = envDuration("SHUTDOWN_TIMEOUT", defaultShutdownTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr é o endereço de escuta do servidor HTTP.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envPositiveInt(key string, def int) (int, error) {
	n, err := envInt(key, def)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s %d: must be positive", key, n)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %s: must not be negative", key, d)
	}
	return d, nil
}
