// Package config loads the settings of the station report combiner.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// Command line flags are applied on top by cmd/meteocombine.
//
// # Environment Variables
//
// All environment variables use the METEO_ prefix:
//
//	METEO_INPUT_DIR=/data/reports
//	METEO_OUTPUT_DIR=/data/out
//	METEO_OUTPUT_FILE_NAME=combined_meteo_data_v3.csv
//	METEO_LOGGING_LEVEL=debug
//	METEO_LOGGING_OUTPUT=both
//	METEO_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/meteocombine.prom
//
// The report layout itself (file patterns, header rows, keyword lists) is
// fixed and not part of the configuration.
package config
