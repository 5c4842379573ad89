package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.BaseURL())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ESTUDOS_API_URL", "https://estudos.example.com/")
	t.Setenv("ESTUDOS_REQUEST_TIMEOUT", "5s")
	t.Setenv("ESTUDOS_OFFLINE", "true")

	cfg, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "https://estudos.example.com", cfg.APIURL)
	assert.Equal(t, "https://estudos.example.com/api/v1", cfg.BaseURL())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.UploadTimeout)
	assert.True(t, cfg.Offline)
}

func TestLoadOverrides(t *testing.T) {
	v := NewViper()
	v.Set(KeyAPIURL, "http://10.0.0.2:9000")
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000/api/v1", cfg.BaseURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad scheme", func(c *Config) { c.APIURL = "ftp://host" }},
		{"no host", func(c *Config) { c.APIURL = "http://" }},
		{"zero request timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"negative upload timeout", func(c *Config) { c.UploadTimeout = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := viper.New()
	v.Set(KeyAPIURL, "localhost:8000")
	v.Set(KeyRequestTimeout, time.Second)
	v.Set(KeyUploadTimeout, time.Second)
	_, err := Load(v)
	assert.Error(t, err)
}
