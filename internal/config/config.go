package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"identity-service/internal/auth/credentials"
)

// PepperLength mirrors the hasher's requirement. Every process
// validating the same credential store must carry the exact same
// pepper, so a wrong-length value is a deployment error.
const PepperLength = credentials.PepperLength

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisPoolSize    int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisPingTimeout time.Duration `env:"REDIS_PING_TIMEOUT" envDefault:"2s"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	PasswordPepper string `env:"PASSWORD_PEPPER"`
}

// Load reads configuration from the environment. It does not validate;
// call Validate before using the config so startup fails loudly instead
// of limping along with a bad pepper.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.PasswordPepper == "" {
		return fmt.Errorf("config: PASSWORD_PEPPER must be set")
	}
	if len(c.PasswordPepper) != PepperLength {
		return fmt.Errorf(
			"config: PASSWORD_PEPPER must be exactly %d bytes, got %d",
			PepperLength,
			len(c.PasswordPepper),
		)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("config: DATABASE_DSN must be set")
	}
	return nil
}
