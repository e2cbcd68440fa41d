package document

import (
	"fmt"
	"time"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// Config selects and configures the document store that holds reviews and
// author metadata.
type Config struct {
	Driver         string        `mapstructure:"DOC_DRIVER"`
	URI            string        `mapstructure:"MONGO_URI"`
	Database       string        `mapstructure:"MONGO_DB"`
	ConnectTimeout time.Duration `mapstructure:"MONGO_CONNECT_TIMEOUT"`
	MaxRetries     int           `mapstructure:"MONGO_MAX_RETRIES"`
	RetryDelay     time.Duration `mapstructure:"MONGO_RETRY_DELAY"`
}

func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMemory:
		return nil
	case DriverMongo:
		if c.URI == "" {
			return fmt.Errorf("MONGO_URI is required for DOC_DRIVER=%s", c.Driver)
		}
		if c.Database == "" {
			return fmt.Errorf("MONGO_DB is required for DOC_DRIVER=%s", c.Driver)
		}
		return nil
	default:
		return fmt.Errorf("unsupported DOC_DRIVER %q (want %s or %s)", c.Driver, DriverMongo, DriverMemory)
	}
}
