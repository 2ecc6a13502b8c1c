// Package config loads and validates auctioneer configuration from YAML.
//
// Files may reference environment variables with ${VAR} syntax; they are
// expanded before parsing. Optional fields receive defaults, required fields
// are checked by Validate.
package config
