package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	configuration, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3001, configuration.ServerPort)
	assert.Equal(t, 30*time.Second, configuration.Provider.ResponseTimeout)
	assert.Equal(t, 60*time.Second, configuration.OCR.ResponseTimeout)
	assert.Equal(t, 15*time.Second, configuration.Finalizer.ResponseTimeout)
}

func TestSanitize(t *testing.T) {
	cfg := &Configuration{
		ServerUrl: "http://localhost:3001/",
		Provider:  Provider{BaseURL: "http://backend:8080"},
		OCR:       OCR{URL: "http://ocr:9000/compare"},
		Finalizer: Finalizer{URL: "http://backend:8080/finalize"},
	}
	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, "http://localhost:3001", cfg.ServerUrl)
	assert.NotEmpty(t, cfg.TmpDir)

	bad := &Configuration{ServerUrl: "not-an-url"}
	assert.Error(t, bad.Sanitize())
}
