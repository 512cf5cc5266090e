// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines configuration shared by the elastic-tutorial CLI
// and its internal packages.
package types

import "time"

// HTTPConfig holds shared HTTP settings used by sources that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "elastic-tutorial/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceKind selects where the raw dataset is read from.
type SourceKind string

const (
	SourceURL  SourceKind = "url"
	SourceFile SourceKind = "file"
	SourceS3   SourceKind = "s3"
)

// S3Config locates a mirror of the dataset in an S3-compatible bucket.
type S3Config struct {
	Bucket string `json:"bucket" yaml:"bucket" mapstructure:"bucket"`
	Key    string `json:"key" yaml:"key" mapstructure:"key"`
	Region string `json:"region" yaml:"region" mapstructure:"region"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// UsePathStyle addresses buckets as endpoint/bucket/key.
	UsePathStyle bool `json:"use_path_style" yaml:"use_path_style" mapstructure:"use_path_style"`
}

// DatasetConfig holds settings for fetching the elastic tensor dataset.
type DatasetConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Source selects the backend: url, file or s3 (default url).
	Source SourceKind `json:"source" yaml:"source" mapstructure:"source"`

	// URL is the dataset download location for the url source.
	URL string `json:"url" yaml:"url" mapstructure:"url"`

	// Path is a local .json or .json.gz file for the file source.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	S3 S3Config `json:"s3" yaml:"s3" mapstructure:"s3"`

	// SHA256 is the expected hex digest of the raw payload. Empty skips the check.
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty" mapstructure:"sha256"`
}

// ExportFormat selects how a loaded table is written.
type ExportFormat string

const (
	FormatTable ExportFormat = "table"
	FormatJSON  ExportFormat = "json"
	FormatYAML  ExportFormat = "yaml"
	FormatCSV   ExportFormat = "csv"
)

// ExportConfig holds output settings for the load command.
type ExportConfig struct {
	// Format is the stdout format (default table).
	Format ExportFormat `json:"format" yaml:"format" mapstructure:"format"`

	// SQLitePath, when set, also writes the table into a SQLite database.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" mapstructure:"sqlite_path"`

	// SQLiteTable is the destination table name (default "elastic_tutorial").
	SQLiteTable string `json:"sqlite_table" yaml:"sqlite_table" mapstructure:"sqlite_table"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// Config groups every setting the CLI reads from file, environment and flags.
type Config struct {
	Dataset DatasetConfig `json:"dataset" yaml:"dataset" mapstructure:"dataset"`
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`

	// MetricsFile, when set, receives a Prometheus textfile after each load.
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty" mapstructure:"metrics_file"`
}
