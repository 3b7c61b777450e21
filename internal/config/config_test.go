package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/retail/internal/config"
)

var allVars = []string{
	"RETAIL_DATABASE_DRIVER",
	"RETAIL_DATABASE_PATH",
	"RETAIL_DATABASE_HOST",
	"RETAIL_DATABASE_PORT",
	"RETAIL_DATABASE_USER",
	"RETAIL_DATABASE_PASSWORD",
	"RETAIL_DATABASE_NAME",
	"RETAIL_DATABASE_SSL_MODE",
	"RETAIL_LOG_LEVEL",
	"RETAIL_LOG_FORMAT",
	"RETAIL_REPORT_ORDER_ID",
	"RETAIL_REPORT_THRESHOLD",
	"RETAIL_REPORT_CONTINUE_ON_ERROR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range allVars {
		t.Setenv(v, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "retail.db", cfg.Database.Path)
	assert.Equal(t, "retail_store", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int64(1), cfg.Report.OrderID)
	assert.False(t, cfg.Report.ContinueOnError)

	threshold, err := cfg.Report.ThresholdDecimal()
	require.NoError(t, err)
	assert.Equal(t, "1000", threshold.String())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("RETAIL_DATABASE_DRIVER", "postgres")
	t.Setenv("RETAIL_DATABASE_HOST", "db.internal")
	t.Setenv("RETAIL_DATABASE_PORT", "6543")
	t.Setenv("RETAIL_DATABASE_USER", "root")
	t.Setenv("RETAIL_DATABASE_PASSWORD", "root")
	t.Setenv("RETAIL_DATABASE_SSL_MODE", "require")
	t.Setenv("RETAIL_LOG_FORMAT", "json")
	t.Setenv("RETAIL_REPORT_ORDER_ID", "2")
	t.Setenv("RETAIL_REPORT_THRESHOLD", "650.50")
	t.Setenv("RETAIL_REPORT_CONTINUE_ON_ERROR", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(2), cfg.Report.OrderID)
	assert.True(t, cfg.Report.ContinueOnError)

	threshold, err := cfg.Report.ThresholdDecimal()
	require.NoError(t, err)
	assert.Equal(t, "650.50", threshold.StringFixed(2))
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"RETAIL_DATABASE_DRIVER": "mysql"}},
		{"postgres without host", map[string]string{"RETAIL_DATABASE_DRIVER": "postgres", "RETAIL_DATABASE_USER": "root"}},
		{"bad log level", map[string]string{"RETAIL_LOG_LEVEL": "loud"}},
		{"non-positive order id", map[string]string{"RETAIL_REPORT_ORDER_ID": "0"}},
		{"non-numeric threshold", map[string]string{"RETAIL_REPORT_THRESHOLD": "lots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
