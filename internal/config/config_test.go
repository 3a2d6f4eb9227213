package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		Env:           "development",
		SessionSecret: "secure-session-secret-at-least-32-chars",
		DBDriver:      "sqlite",
		DBPath:        "blog.db",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"postgres without path", func(c *Config) { c.DBDriver = "postgres"; c.DBPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			"default secret rejected",
			func(c *Config) { c.SessionSecret = "dev-session-secret-change-in-production" },
			true,
		},
		{
			"short secret rejected",
			func(c *Config) { c.SessionSecret = "short" },
			true,
		},
		{
			"default postgres password rejected",
			func(c *Config) { c.DBDriver = "postgres"; c.DBPassword = "password" },
			true,
		},
		{
			"strong settings accepted",
			func(c *Config) { c.DBDriver = "postgres"; c.DBPassword = "sturdy-unique-password"; c.DBSSLMode = "require" },
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
