package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Telegram  Telegram
	Postgres  Postgres
	HTTP      HTTP
	Token     Token
	Grades    Grades
	Reminders Reminders
	Log       Log
}

type Telegram struct {
	BotToken        string        `env:"TELEGRAM_BOT_TOKEN" env-required:"true"`
	LongPollerDelay time.Duration `env:"TELEGRAM_LONG_POLLER_DELAY" env-default:"10s"`
	AdminID         int64         `env:"TELEGRAM_ADMIN_ID" env-required:"true"`
}

type Postgres struct {
	// DSN may be empty for local runs, the data is kept in memory then.
	DSN string `env:"POSTGRES_DSN" env-description:"PostgreSQL connection string"`
}

type HTTP struct {
	Address         string        `env:"HTTP_ADDRESS" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	DisableReqLogs  bool          `env:"HTTP_DISABLE_REQUEST_LOGS" env-default:"false"`
}

type Token struct {
	Secret string        `env:"SYNC_TOKEN_SECRET" env-required:"true"`
	TTL    time.Duration `env:"SYNC_TOKEN_TTL" env-default:"720h"`
}

type Grades struct {
	// SessionTTL is how long a bot session lasts after the last entered grade.
	SessionTTL time.Duration `env:"GRADES_SESSION_TTL" env-default:"30m"`
}

type Reminders struct {
	Schedule       string        `env:"REMINDER_SCHEDULE" env-default:"0 7 * * *"`
	Window         time.Duration `env:"REMINDER_WINDOW" env-default:"72h"`
	WorkerPoolSize int           `env:"REMINDER_WORKERS" env-default:"4"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// NewConfig reads the configuration from the environment. When path is not
// empty the file is read first and the environment overrides it.
func NewConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("cleanenv.ReadConfig: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return cfg, nil
}

// Description lists the supported environment variables.
func Description() string {
	help, _ := cleanenv.GetDescription(&Config{}, nil)
	return help
}
