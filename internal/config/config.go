package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration for the exam portal service,
// parsed from environment variables.
type Config struct {
	HTTPAddress  string `env:"HTTP_ADDRESS"  envDefault:":8080"`
	Debug        bool   `env:"DEBUG"         envDefault:"false"`
	MongoURI     string `env:"MONGODB_URI"   envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"exam_portal"`
	StaticDir    string `env:"STATIC_DIR"    envDefault:"web/dist"`

	// AppPasswordResetURL is the frontend page the password reset email
	// links to; the token is appended as a query parameter.
	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:8080/auth/reset-password"`

	Token TokenConfig `envPrefix:"TOKEN_"`
}

// TokenConfig holds session and password reset token settings. Both secrets
// are mandatory: token issuance and verification must fail closed rather
// than fall back to a built-in default.
type TokenConfig struct {
	Issuer                 string        `env:"ISSUER"                    envDefault:"exam-portal-api"`
	SessionSecret          string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionExpiresIn       time.Duration `env:"SESSION_EXPIRES_IN"        envDefault:"720h"`
	PasswordResetSecret    string        `env:"PASSWORD_RESET_SECRET,required,notEmpty"`
	PasswordResetExpiresIn time.Duration `env:"PASSWORD_RESET_EXPIRES_IN" envDefault:"15m"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return &cfg, nil
}
