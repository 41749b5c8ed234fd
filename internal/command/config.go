package command

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/hasbyte1/go-fshp/fshp"
	"github.com/hasbyte1/go-fshp/hashing"
)

// Config holds the defaults for the fshp command.  Flags override them and
// are held to the same rules.
type Config struct {
	SaltLen   int    `env:"FSHP_SALT_LEN" envDefault:"8" validate:"gte=0,lte=1024"`
	Rounds    int    `env:"FSHP_ROUNDS" envDefault:"4096" validate:"gte=1"`
	Variant   int    `env:"FSHP_VARIANT" envDefault:"1" validate:"gte=0,lte=3"`
	MaxRounds int    `env:"FSHP_MAX_ROUNDS" envDefault:"0" validate:"omitempty,gtefield=Rounds"`
	LogLevel  string `env:"FSHP_LOG_LEVEL" envDefault:"warn" validate:"oneof=trace debug info warn error disabled"`
}

// validate is shared; it caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// LoadConfig reads Config from environ, or from the process environment
// when environ is nil, and validates it.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Params returns the configured FSHP parameters.
func (c Config) Params() fshp.Params {
	return fshp.Params{Variant: fshp.Variant(c.Variant), SaltLen: c.SaltLen, Rounds: c.Rounds}
}

// FSHPOptions returns the configured parameters as driver options.
func (c Config) FSHPOptions() hashing.FSHPOptions {
	p := c.Params()
	return hashing.FSHPOptions{Variant: p.Variant, SaltLen: p.SaltLen, Rounds: p.Rounds, MaxRounds: c.MaxRounds}
}
