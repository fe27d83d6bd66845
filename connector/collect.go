// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"time"
)

// Collect receives one message while heartbeating in the background at
// the given rate. Use it in a service's main loop when the next
// message may be a long time coming: a bare [Receive] blocks the
// goroutine indefinitely, and a connector that stays silent on the
// outbound channel that whole time looks stuck to the daemon.
//
// The background loop checks for cancellation, heartbeats, then sleeps
// for rate; the foreground blocks in Receive. Once Receive returns —
// with a message or a fault — the loop is cancelled and Collect waits
// for it to stop before returning, so no heartbeat is sent after
// Collect returns. The sleep is interruptible; the wait is bounded by
// at most one in-flight heartbeat write.
//
// A failing background heartbeat is logged and ends the loop without
// propagating: the foreground Receive surfaces the real fault when
// the channel is actually used. Heartbeat and receive frames never
// interleave byte-for-byte because each direction has its own guard;
// whole-frame interleaving between heartbeats and concurrent sends is
// expected and harmless.
func Collect[T any](conn *Connection, rate time.Duration) (Packet[T], error) {
	cancelled := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		for {
			select {
			case <-cancelled:
				return
			default:
			}
			if err := conn.Heartbeat(); err != nil {
				conn.logger.Warn("background heartbeat failed", "error", err)
				return
			}
			select {
			case <-cancelled:
				return
			case <-conn.clock.After(rate):
			}
		}
	}()

	packet, err := Receive[T](conn)
	close(cancelled)
	<-stopped
	return packet, err
}
