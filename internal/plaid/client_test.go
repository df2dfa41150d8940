package plaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/spendsort/internal/common"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{
		ClientID:    "client",
		Secret:      "secret",
		Environment: "sandbox",
		AccessToken: "token",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid sandbox", func(_ *Config) {}, nil},
		{"valid production", func(c *Config) { c.Environment = "production" }, nil},
		{"missing client ID", func(c *Config) { c.ClientID = "" }, common.ErrMissingConfig},
		{"missing secret", func(c *Config) { c.Secret = "" }, common.ErrMissingConfig},
		{"missing access token", func(c *Config) { c.AccessToken = "" }, common.ErrMissingConfig},
		{"bad environment", func(c *Config) { c.Environment = "staging" }, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewClientRejectsInvalidConfig(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestCleanMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "Starbucks", "Starbucks"},
		{"strips long trailing reference", "Uber Trip 88231945", "Uber Trip"},
		{"keeps short trailing number", "Terminal 5", "Terminal 5"},
		{"keeps store numbers within", "Store 123456 Main St", "Store 123456 Main St"},
		{"collapses whitespace", "  Whole   Foods  ", "Whole Foods"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanMerchantName(tt.input))
		})
	}
}

func TestIsAllDigits(t *testing.T) {
	assert.True(t, isAllDigits("123456"))
	assert.False(t, isAllDigits("12a456"))
	assert.False(t, isAllDigits(""))
}
