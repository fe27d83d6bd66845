// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads connector service configuration. The config
// file is named by exactly one of:
//   - the COURIER_SERVICE_CONFIG environment variable, or
//   - a --config flag passed to the connector binary.
//
// There are no fallbacks or automatic discovery: the daemon provisions
// the file and tells the connector where it is, so a missing path is a
// provisioning bug worth failing loudly on.
//
// The file carries what the daemon's service definition promises about
// this connector — its service name, the version it should report in
// the startup announcement, and the heartbeat interval the daemon
// expects. The connector should heartbeat at least this often; the
// daemon restarts services that fall silent for longer.
package config
