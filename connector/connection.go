// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bureau-foundation/courier/lib/clock"
	"github.com/bureau-foundation/courier/lib/codec"
	"github.com/bureau-foundation/courier/wire"
)

// systemService is the daemon-side destination for protocol-level
// messages (heartbeats, startup announcements).
const systemService = "system"

// Message types of the fixed system messages.
const (
	heartbeatMessageType = "Heartbeat"
	startupMessageType   = "StartupData"
)

// StartupData is the payload of the startup announcement. The daemon
// uses the pid to associate the channel pair with the process it
// spawned and records the version for fleet statistics.
type StartupData struct {
	PID     int64  `cbor:"pid"`
	Version string `cbor:"version"`
}

// Connection owns a validated channel pair. Construct one with
// [Connect]; there is no other way to obtain a usable Connection, so a
// Connection in hand always means the handshake succeeded.
//
// A Connection is safe for concurrent use. The inbound and outbound
// channels are guarded independently: one goroutine can block in
// [Receive] while another sends heartbeats or messages.
type Connection struct {
	inbound  io.Reader
	outbound io.Writer

	// readMu serializes all inbound operations, writeMu all outbound
	// ones. They are never held together.
	readMu  sync.Mutex
	writeMu sync.Mutex

	// stateMu guards failure. A non-nil failure means the connection
	// is poisoned; it never resets.
	stateMu sync.Mutex
	failure error

	// throttleMu guards lastHeartbeat, the shared timestamp behind
	// HeartbeatWithThrottle. Zero until the first throttled beat.
	throttleMu    sync.Mutex
	lastHeartbeat time.Time

	clock  clock.Clock
	logger *slog.Logger
}

// Option configures a Connection during Connect.
type Option func(*Connection)

// WithClock sets the clock used by the heartbeat scheduler and the
// throttle. The default is clock.Real(). Tests inject clock.Fake()
// for deterministic timing.
func WithClock(c clock.Clock) Option {
	return func(conn *Connection) {
		conn.clock = c
	}
}

// WithLogger sets the logger for the connection's diagnostics (empty
// payloads, background heartbeat failures). The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(conn *Connection) {
		conn.logger = logger
	}
}

// Connect performs the handshake on the given channel pair and returns
// a ready Connection that owns it. When the handshake fails — wrong
// magic from the peer, or any I/O fault — no Connection is returned
// and the pair must not be used: there is no observable
// partially-initialized state.
//
// Connect must be called exactly once per channel pair, before any
// other use of either channel.
func Connect(inbound io.Reader, outbound io.Writer, options ...Option) (*Connection, error) {
	conn := &Connection{
		inbound:  inbound,
		outbound: outbound,
		clock:    clock.Real(),
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(conn)
	}

	if err := wire.Handshake(inbound, outbound); err != nil {
		return nil, err
	}
	conn.logger.Debug("courier handshake complete")
	return conn, nil
}

// Heartbeat sends one heartbeat frame to the daemon. No response is
// expected or awaited. Connector services should heartbeat regularly;
// a silent service looks stuck to the daemon and gets restarted.
func (c *Connection) Heartbeat() error {
	return c.writeFrame(&wire.Envelope{
		MessageType: heartbeatMessageType,
		Destination: &wire.Address{ServiceName: systemService},
	})
}

// HeartbeatWithThrottle sends a heartbeat unless one was already sent
// less than rate ago, in which case it does nothing. The last-sent
// timestamp is shared across all callers of the connection and only
// advances on a successful send.
//
// This is a rate-limiting policy for manual heartbeat loops; it is
// independent of the background scheduling that [Collect] does.
func (c *Connection) HeartbeatWithThrottle(rate time.Duration) error {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()

	if !c.lastHeartbeat.IsZero() && c.clock.Now().Sub(c.lastHeartbeat) < rate {
		return nil
	}
	if err := c.Heartbeat(); err != nil {
		return err
	}
	c.lastHeartbeat = c.clock.Now()
	return nil
}

// AnnounceStartup sends the startup announcement carrying this
// process's pid and the self-reported version string. Every connector
// must announce once, early in its lifetime; a daemon that does not
// see the announcement quickly enough kills the process. The deadline
// policy lives in the daemon — the connector only guarantees timely
// transmission when called.
func (c *Connection) AnnounceStartup(version string) error {
	data := StartupData{
		PID:     int64(os.Getpid()),
		Version: version,
	}
	value, err := codec.Marshal(data)
	if err != nil {
		return &wire.EncodeError{Err: err}
	}
	return c.writeFrame(&wire.Envelope{
		MessageType: startupMessageType,
		Destination: &wire.Address{ServiceName: systemService},
		Data: &wire.Payload{
			TypeURL: codec.TypeURL(data),
			Value:   value,
		},
	})
}

// writeFrame writes one whole frame under the outbound guard. An I/O
// or framing fault poisons the connection; an encode fault does not,
// because marshalling completes before any byte reaches the channel.
func (c *Connection) writeFrame(envelope *wire.Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}
	if err := wire.WriteFrame(c.outbound, envelope); err != nil {
		if poisoning(err) {
			c.poison(err)
		}
		return err
	}
	return nil
}

// readFrame reads one whole frame under the inbound guard. An I/O or
// framing fault poisons the connection; a decode fault does not, since
// the frame boundary was still located correctly.
func (c *Connection) readFrame() (*wire.Envelope, error) {
	c.readMu.Lock()
	defer c.readMu.Unlock()

	if err := c.ready(); err != nil {
		return nil, err
	}
	envelope, err := wire.ReadFrame(c.inbound)
	if err != nil {
		if poisoning(err) {
			c.poison(err)
		}
		return nil, err
	}
	return envelope, nil
}

// ready fails fast when the connection is poisoned.
func (c *Connection) ready() error {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.failure != nil {
		return &PoisonedError{Fault: c.failure}
	}
	return nil
}

// poison records the first connection-fatal fault. Later faults are
// dropped; the first one is what diagnosis needs.
func (c *Connection) poison(err error) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	if c.failure == nil {
		c.failure = err
	}
}

// poisoning classifies a wire-layer error. Encode and decode faults
// leave the stream position intact and are terminal for the call only;
// everything else (I/O faults, framing faults) means the channel can
// no longer be trusted.
func poisoning(err error) bool {
	var encodeError *wire.EncodeError
	var decodeError *wire.DecodeError
	if errors.As(err, &encodeError) || errors.As(err, &decodeError) {
		return false
	}
	return true
}
