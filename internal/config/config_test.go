package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meteocombine/internal/errors"
)

var envVars = []string{
	"METEO_INPUT_DIR",
	"METEO_OUTPUT_DIR",
	"METEO_OUTPUT_FILE_NAME",
	"METEO_LOGGING_LEVEL",
	"METEO_LOGGING_OUTPUT",
	"METEO_LOGGING_FILE_PATH",
	"METEO_METRICS_TEXTFILE_PATH",
}

// clearEnv unsets every METEO_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range envVars {
		if val, ok := os.LookupEnv(envVar); ok {
			t.Cleanup(func() { os.Setenv(envVar, val) })
		}
		os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meteocombine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env and no file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".", cfg.Input.Dir)
				assert.Equal(t, ".", cfg.Output.Dir)
				assert.Equal(t, "combined_meteo_data_v3.csv", cfg.Output.FileName)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Empty(t, cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "environment variables",
			env: map[string]string{
				"METEO_INPUT_DIR":             "/data/in",
				"METEO_LOGGING_LEVEL":         "debug",
				"METEO_METRICS_TEXTFILE_PATH": "/tmp/meteo.prom",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/data/in", cfg.Input.Dir)
				assert.Equal(t, ".", cfg.Output.Dir)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "/tmp/meteo.prom", cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "file values keep defaults for missing keys",
			file: `
input:
  dir: /srv/reports
logging:
  level: warn
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/srv/reports", cfg.Input.Dir)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "combined_meteo_data_v3.csv", cfg.Output.FileName)
				assert.Equal(t, "console", cfg.Logging.Output)
			},
		},
		{
			name: "environment overrides file",
			env: map[string]string{
				"METEO_LOGGING_LEVEL": "error",
			},
			file: `
logging:
  level: debug
output:
  file_name: out.csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, "out.csv", cfg.Output.FileName)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"METEO_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "output file must be csv",
			env:     map[string]string{"METEO_OUTPUT_FILE_NAME": "combined.xlsx"},
			wantErr: true,
		},
		{
			name:    "output file must not contain a directory",
			env:     map[string]string{"METEO_OUTPUT_FILE_NAME": "sub/combined.csv"},
			wantErr: true,
		},
		{
			name: "file output requires a path",
			env: map[string]string{
				"METEO_LOGGING_OUTPUT":    "file",
				"METEO_LOGGING_FILE_PATH": "",
			},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "input: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			configFile := ""
			if tt.file != "" {
				configFile = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(configFile)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
