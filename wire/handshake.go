// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"io"
)

// Handshake validates a channel pair before any frame is trusted: it
// writes the magic to outbound, flushes, then reads 4 bytes from
// inbound and compares them to the magic. A mismatch surfaces as
// *FramingError carrying the value read.
//
// This is a liveness and compatibility probe, not a cryptographic or
// versioned exchange; its whole job is to catch a misconfigured or
// swapped channel pair at startup. It must run exactly once per pair,
// before any message exchange — connector.Connect does so and refuses
// to construct a connection when the handshake fails.
func Handshake(inbound io.Reader, outbound io.Writer) error {
	if err := writeMagic(outbound); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if err := flush(outbound); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	if err := readMagic(inbound); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}
	return nil
}
