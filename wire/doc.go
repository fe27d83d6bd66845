// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire implements Courier's frame layer: the envelope that
// carries routing metadata and an opaque payload, the length-prefixed
// magic-terminated binary framing that delimits envelopes on a byte
// stream, and the one-time handshake that validates a channel pair
// before any frame is trusted.
//
// The format is fixed by the supervising daemon and is byte-exact:
//
//	frame     = u32 LE length || CBOR(envelope) || u32 LE magic
//	handshake = u32 LE magic, flushed, then u32 LE magic read back
//
// The trailing magic on every frame catches a desynchronized stream at
// the earliest possible frame boundary instead of letting a corrupted
// length field silently misparse everything after it.
//
// The package is stateless: each call consumes or produces exactly one
// handshake token or frame and retains nothing between calls.
package wire
