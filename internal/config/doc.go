// Package config loads the MetalWatch YAML configuration and optionally
// watches it for changes while the daemon runs.
package config
