// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package comms obtains the channel pair from the host environment:
// the supervising daemon opens one pipe per direction before spawning
// the connector process and publishes their handles in the
// COURIER_COMMS_CHANNEL_INFD and COURIER_COMMS_CHANNEL_OUTFD
// environment variables.
//
// This is the only platform-specific corner of Courier. Each platform
// validates the published handle before wrapping it (fcntl on Unix, a
// named-pipe file type check on Windows) so a stale or mistyped value
// fails here, at startup, rather than as a confusing I/O fault mid
// protocol. Everything above this package sees only an io.Reader and
// an io.Writer.
//
// A missing or unparsable variable is fatal for the whole connector:
// without the channel pair the daemon considers the process dead on
// arrival, so there is no degraded mode to fall back to.
package comms
