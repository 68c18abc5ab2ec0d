package literal

// Config bounds literal extraction.
//
// The limits keep extraction cheap on adversarial trees:
//   - MaxLiterals caps the number of alternatives collected from
//     alternations before extraction gives up
//   - MaxLiteralLen caps the length of any single literal; beyond it the
//     literal is cut and no longer counts as complete
//
// Example:
//
//	config := literal.DefaultConfig()
//	config.MaxLiterals = 128
//	extractor := literal.New(config)
type Config struct {
	// MaxLiterals limits how many alternative literals one extraction
	// may produce. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the byte length of each extracted literal.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Validate checks that the configuration values are usable.
//
// Example:
//
//	if err := config.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func (c Config) Validate() error {
	if c.MaxLiterals < 1 || c.MaxLiterals > 10_000 {
		return &ConfigError{
			Field:   "MaxLiterals",
			Message: "must be between 1 and 10,000",
		}
	}
	if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1_024 {
		return &ConfigError{
			Field:   "MaxLiteralLen",
			Message: "must be between 1 and 1,024",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "literal: invalid config: " + e.Field + ": " + e.Message
}
