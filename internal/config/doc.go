// SPDX-License-Identifier: MPL-2.0

// Package config loads schemareg process configuration from defaults, an
// optional config file, and SCHEMAREG_* environment variables, in increasing
// precedence. Command-line flags override all of these at the CLI layer.
package config
