// Package config loads service configuration from environment variables,
// optional .env files and an optional YAML file of health probe groups.
//
//	cfg, err := config.Load(".env", ".local.env")
//
// Every setting has a default, so an empty environment yields a working
// configuration serving probes under /actuator/health on :8080.
package config
