// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// PathVariable is the environment variable naming the config file.
const PathVariable = "COURIER_SERVICE_CONFIG"

// ServiceConfig describes one connector service.
type ServiceConfig struct {
	// Service is the name this connector is registered under on the
	// daemon side.
	Service string `yaml:"service"`

	// Version is the self-reported version sent in the startup
	// announcement. Used by the fleet for statistics, not for
	// compatibility decisions.
	Version string `yaml:"version"`

	// HeartbeatInterval is how often the daemon expects a heartbeat.
	// Accepts Go duration syntax ("3s", "1m30s").
	HeartbeatInterval Duration `yaml:"heartbeat_interval"`
}

// Duration wraps time.Duration with YAML unmarshalling from Go
// duration syntax. yaml.v3 has no native duration support.
type Duration time.Duration

// UnmarshalYAML parses a scalar node with time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads and validates a service configuration file.
func Load(path string) (*ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var serviceConfig ServiceConfig
	if err := yaml.Unmarshal(data, &serviceConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := serviceConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &serviceConfig, nil
}

// FromEnvironment loads the config file named by COURIER_SERVICE_CONFIG.
func FromEnvironment() (*ServiceConfig, error) {
	path, ok := os.LookupEnv(PathVariable)
	if !ok || path == "" {
		return nil, fmt.Errorf("config variable %s is not set", PathVariable)
	}
	return Load(path)
}

// Validate checks the configuration for fields the connector cannot
// operate without.
func (c *ServiceConfig) Validate() error {
	if c.Service == "" {
		return fmt.Errorf("service name is required")
	}
	if c.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat_interval must be positive, got %v", c.HeartbeatInterval.Std())
	}
	return nil
}
