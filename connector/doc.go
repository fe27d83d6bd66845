// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package connector implements the client side of the Courier channel
// protocol: a [Connection] over a pre-opened channel pair, constructed
// by [Connect] after a successful handshake, and the operations the
// supervising daemon permits on it — [Connection.Heartbeat],
// [Connection.AnnounceStartup], [Send], [Receive], and [Collect]
// (receive with background heartbeating).
//
// Reads and writes hold independent guards, so a heartbeat can go out
// on the outbound channel while a receive blocks on the inbound one.
// Within one direction, a whole frame is written or read before the
// guard is released; frames never tear.
//
// A Connection is permanently poisoned by the first I/O or framing
// fault it observes. Every subsequent operation fails fast with a
// [PoisonedError] instead of touching a stream whose position may be
// corrupt. There is no repair path: the process is expected to exit
// and be respawned by the supervising daemon.
package connector
