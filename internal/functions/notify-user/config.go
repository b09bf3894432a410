// internal/functions/notify-user/config.go
package notifyuser

import "time"

type Config struct {
	Timeout       time.Duration
	EmailDelivery bool
	PushDelivery  bool
	CacheTTL      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		CacheTTL: 5 * time.Minute,
	}
}
