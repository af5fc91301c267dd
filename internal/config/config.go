package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "meteocombine/internal/errors"
)

// EnvPrefix namespaces all environment variables, e.g. METEO_INPUT_DIR.
const EnvPrefix = "METEO"

// DefaultOutputFile is the name of the combined dataset file.
const DefaultOutputFile = "combined_meteo_data_v3.csv"

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// InputConfig says where the station report spreadsheets are read from
type InputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// OutputConfig says where the combined CSV is written
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR" validate:"required"`
	FileName string `yaml:"file_name" envconfig:"FILE_NAME" validate:"required,endswith=.csv,excludesall=/\\"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// MetricsConfig controls the Prometheus textfile written at the end of a run.
// An empty TextfilePath disables it.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Default returns default configuration: read and write in the current directory
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir: ".",
		},
		Output: OutputConfig{
			Dir:      ".",
			FileName: DefaultOutputFile,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/meteocombine.log",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence. An empty
// configFile means the usual locations are searched.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("config file %s", configFile), err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Only variables that are set override the file and the defaults.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration with struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"meteocombine.yaml",
		"configs/meteocombine.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
