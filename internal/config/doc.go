// Package config loads the lorenz CLI configuration from defaults, an
// optional YAML file and LORENZ_* environment variables.
package config
