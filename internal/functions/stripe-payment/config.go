// internal/functions/stripe-payment/config.go
package stripepayment

import "time"

type Config struct {
	// SecretKey is the processor credential. Left empty, every request
	// fails closed with a configuration error.
	SecretKey string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
