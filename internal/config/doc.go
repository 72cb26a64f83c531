// Package config handles loading and parsing Porthole configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/porthole/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/porthole/config.toml
//   - Capacity: 1024 records
//   - Level: info
//   - Backlog: 200 lines
//
// # TOML Format
//
// Example config.toml:
//
//	log_path = "~/.local/share/myapp/app.log"
//	capacity = 2048
//	level = "warn"
//	backlog = 500
//
// All fields are optional. Tilde expansion is performed automatically on
// log_path. Missing config files are NOT an error - defaults are used
// instead, so Porthole works out-of-the-box reading from stdin.
package config
