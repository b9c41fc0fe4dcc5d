// Package utils holds the configuration loader and logger factory shared by
// the commit-msg command line.
//
// ConfigurationLoader layers embedded defaults, an optional configuration
// file, and environment overrides through Viper. LoggerFactory turns the
// resolved log level and format into a zap logger writing to stderr.
package utils
