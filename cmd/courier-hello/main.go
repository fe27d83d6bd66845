// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// courier-hello is a minimal Courier connector service: it announces
// itself to the supervising daemon, then answers every incoming
// message with a greeting, heartbeating between requests. It doubles
// as a smoke test for a daemon-side Courier deployment.
//
// The daemon provides the channel pair via COURIER_COMMS_CHANNEL_INFD
// and COURIER_COMMS_CHANNEL_OUTFD, and the service configuration via
// COURIER_SERVICE_CONFIG (or the --config flag).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/courier/comms"
	"github.com/bureau-foundation/courier/connector"
	"github.com/bureau-foundation/courier/lib/config"
	"github.com/bureau-foundation/courier/lib/process"
)

func main() {
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	configPath := pflag.String("config", "", "service config file (overrides "+config.PathVariable+")")
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	var serviceConfig *config.ServiceConfig
	var err error
	if *configPath != "" {
		serviceConfig, err = config.Load(*configPath)
	} else {
		serviceConfig, err = config.FromEnvironment()
	}
	if err != nil {
		return err
	}

	pair, err := comms.FromEnvironment()
	if err != nil {
		return err
	}

	conn, err := connector.Connect(pair.Inbound, pair.Outbound, connector.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("connecting to daemon: %w", err)
	}
	if err := conn.AnnounceStartup(serviceConfig.Version); err != nil {
		return fmt.Errorf("announcing startup: %w", err)
	}
	logger.Info("connected to daemon",
		"service", serviceConfig.Service,
		"version", serviceConfig.Version,
		"heartbeat_interval", serviceConfig.HeartbeatInterval.Std())

	// Any connection fault below is terminal: return the error, exit,
	// and let the daemon respawn the process with a fresh pair.
	rate := serviceConfig.HeartbeatInterval.Std()
	for {
		request, err := connector.Collect[string](conn, rate)
		if err != nil {
			return fmt.Errorf("receiving request: %w", err)
		}
		logger.Info("request received", "from", request.Service, "kind", request.Kind)

		reply := connector.Packet[string]{
			Service: request.Service,
			Data:    fmt.Sprintf("Hello, %s!", request.Data),
		}
		if err := connector.Send(conn, reply); err != nil {
			return fmt.Errorf("sending reply: %w", err)
		}
	}
}
