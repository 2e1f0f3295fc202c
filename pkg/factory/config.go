package factory

import "time"

// Config represents the configuration for the pizza factory client
type Config struct {
	// BaseURL is the factory API base URL
	BaseURL string

	// APIKey authenticates this vendor with the factory
	APIKey string

	// Timeout bounds each fulfillment call; a timed-out call counts as a
	// fulfillment failure
	Timeout time.Duration
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrInvalidConfig
	}
	if c.APIKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
