package logging

import "go.uber.org/zap/zapcore"

// Config is the configuration for the logging subsystem.
type Config struct {
	// Level is the minimum logging level that gets emitted.
	Level zapcore.Level `yaml:"level"`
	// OutputPaths lists sinks log records are written to. "stderr" and
	// "stdout" are recognized specially; anything else is treated as a
	// file path. Empty defaults to ["stderr"].
	OutputPaths []string `yaml:"output_paths"`
}

// DefaultConfig returns the logging configuration sqctl runs with when
// the operator does not override it.
func DefaultConfig() *Config {
	return &Config{
		Level:       zapcore.InfoLevel,
		OutputPaths: []string{"stderr"},
	}
}
