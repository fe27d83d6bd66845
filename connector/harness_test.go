// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/bureau-foundation/courier/wire"
)

// magicBytes is the little-endian encoding of wire.Magic, spelled out
// so the tests assert the on-the-wire byte order independently of the
// production encoder.
var magicBytes = []byte{0x01, 0x10, 0xEE, 0xF1}

// syncBuffer is an in-memory outbound channel safe for the concurrent
// writes a background heartbeat produces. Fail makes subsequent
// writes return the given error, simulating a broken pipe.
type syncBuffer struct {
	mu     sync.Mutex
	buffer bytes.Buffer
	err    error
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	return b.buffer.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buffer.Bytes()...)
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffer.Reset()
}

func (b *syncBuffer) Fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// newTestConnection connects over an in-memory channel pair playing
// the daemon's role: the handshake magic is pre-queued on the inbound
// side, and the returned pipe writer feeds further inbound bytes. The
// outbound buffer is reset after the handshake so tests only see
// frames from the operations under test.
func newTestConnection(t *testing.T, options ...Option) (*Connection, *io.PipeWriter, *syncBuffer) {
	t.Helper()

	inboundReader, inboundWriter := io.Pipe()
	t.Cleanup(func() { inboundWriter.Close() })

	outbound := &syncBuffer{}
	inbound := io.MultiReader(bytes.NewReader(magicBytes), inboundReader)

	options = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, options...)
	conn, err := Connect(inbound, outbound, options...)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	outbound.Reset()
	return conn, inboundWriter, outbound
}

// deliver queues one envelope on the inbound side. The pipe write
// happens on its own goroutine because io.Pipe writes block until the
// connection's reader consumes them.
func deliver(t *testing.T, inbound *io.PipeWriter, envelope *wire.Envelope) {
	t.Helper()
	frame, err := wire.MarshalFrame(envelope)
	if err != nil {
		t.Fatalf("MarshalFrame: %v", err)
	}
	go inbound.Write(frame)
}

// outboundEnvelopes parses every frame the connection has written.
func outboundEnvelopes(t *testing.T, outbound *syncBuffer) []*wire.Envelope {
	t.Helper()
	reader := bytes.NewReader(outbound.Bytes())
	var envelopes []*wire.Envelope
	for reader.Len() > 0 {
		envelope, err := wire.ReadFrame(reader)
		if err != nil {
			t.Fatalf("parsing outbound frame %d: %v", len(envelopes), err)
		}
		envelopes = append(envelopes, envelope)
	}
	return envelopes
}

// countHeartbeats counts heartbeat frames among the outbound envelopes.
func countHeartbeats(t *testing.T, outbound *syncBuffer) int {
	t.Helper()
	count := 0
	for _, envelope := range outboundEnvelopes(t, outbound) {
		if envelope.MessageType == heartbeatMessageType {
			count++
		}
	}
	return count
}

// greeting is the payload type the tests exchange.
type greeting struct {
	Text string `cbor:"text"`
}
