// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/bureau-foundation/courier/lib/codec"
)

func TestFrameRoundtrip(t *testing.T) {
	tests := []struct {
		name     string
		envelope *Envelope
	}{
		{
			name: "full envelope",
			envelope: &Envelope{
				MessageType: "TaskResult",
				Destination: &Address{ServiceName: "collector"},
				Source:      &Address{ServiceName: "scanner"},
				Data:        &Payload{TypeURL: "type.courier.dev/scanner.Report", Value: []byte{0x01, 0x02, 0x03}},
			},
		},
		{
			name: "heartbeat shape",
			envelope: &Envelope{
				MessageType: "Heartbeat",
				Destination: &Address{ServiceName: "system"},
			},
		},
		{
			name:     "empty envelope",
			envelope: &Envelope{},
		},
		{
			name: "payload without type tag",
			envelope: &Envelope{
				Destination: &Address{ServiceName: "greeter"},
				Data:        &Payload{Value: []byte("hello")},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := WriteFrame(&buffer, test.envelope); err != nil {
				t.Fatalf("WriteFrame: %v", err)
			}

			decoded, err := ReadFrame(&buffer)
			if err != nil {
				t.Fatalf("ReadFrame: %v", err)
			}
			if !reflect.DeepEqual(decoded, test.envelope) {
				t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", decoded, test.envelope)
			}
			if buffer.Len() != 0 {
				t.Errorf("ReadFrame left %d unconsumed bytes", buffer.Len())
			}
		})
	}
}

func TestFrameLayout(t *testing.T) {
	envelope := &Envelope{
		MessageType: "Heartbeat",
		Destination: &Address{ServiceName: "system"},
	}

	frame, err := MarshalFrame(envelope)
	if err != nil {
		t.Fatalf("MarshalFrame: %v", err)
	}

	body, err := codec.Marshal(envelope)
	if err != nil {
		t.Fatalf("codec.Marshal: %v", err)
	}

	if got := binary.LittleEndian.Uint32(frame[0:4]); got != uint32(len(body)) {
		t.Errorf("length field = %d, want %d", got, len(body))
	}
	if !bytes.Equal(frame[4:4+len(body)], body) {
		t.Errorf("frame body differs from envelope encoding")
	}
	trailer := frame[4+len(body):]
	if want := []byte{0x01, 0x10, 0xEE, 0xF1}; !bytes.Equal(trailer, want) {
		t.Errorf("trailing magic = % X, want % X", trailer, want)
	}
}

func TestReadFrameBadMagic(t *testing.T) {
	envelope := &Envelope{Destination: &Address{ServiceName: "greeter"}}
	frame, err := MarshalFrame(envelope)
	if err != nil {
		t.Fatalf("MarshalFrame: %v", err)
	}

	// Corrupt the trailing magic.
	binary.LittleEndian.PutUint32(frame[len(frame)-4:], 0xF1EE1337)

	_, err = ReadFrame(bytes.NewReader(frame))
	var framingError *FramingError
	if !errors.As(err, &framingError) {
		t.Fatalf("ReadFrame error = %v, want *FramingError", err)
	}
	if framingError.Magic != 0xF1EE1337 {
		t.Errorf("FramingError.Magic = 0x%08X, want 0xF1EE1337", framingError.Magic)
	}
}

func TestReadFrameBodyNotAnEnvelope(t *testing.T) {
	// A frame whose boundary is intact but whose body is not CBOR:
	// length and trailing magic are correct, the body is garbage.
	body := []byte{0xFF, 0xFF, 0xFF}
	frame := make([]byte, 4+len(body)+4)
	binary.LittleEndian.PutUint32(frame[0:4], uint32(len(body)))
	copy(frame[4:], body)
	binary.LittleEndian.PutUint32(frame[4+len(body):], Magic)

	_, err := ReadFrame(bytes.NewReader(frame))
	var decodeError *DecodeError
	if !errors.As(err, &decodeError) {
		t.Fatalf("ReadFrame error = %v, want *DecodeError", err)
	}
}

func TestReadFrameTruncated(t *testing.T) {
	envelope := &Envelope{Destination: &Address{ServiceName: "greeter"}}
	frame, err := MarshalFrame(envelope)
	if err != nil {
		t.Fatalf("MarshalFrame: %v", err)
	}

	// Every strict prefix of a valid frame must fail with an I/O
	// error, never a misparse.
	for cut := 0; cut < len(frame); cut++ {
		_, err := ReadFrame(bytes.NewReader(frame[:cut]))
		if err == nil {
			t.Fatalf("ReadFrame succeeded on %d-byte prefix of a %d-byte frame", cut, len(frame))
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("prefix %d: error = %v, want EOF or unexpected EOF", cut, err)
		}
	}
}

func TestWriteFrameIsSingleWrite(t *testing.T) {
	envelope := &Envelope{
		Destination: &Address{ServiceName: "greeter"},
		Data:        &Payload{Value: bytes.Repeat([]byte{0xAB}, 256)},
	}

	recorder := &writeRecorder{}
	if err := WriteFrame(recorder, envelope); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if recorder.calls != 1 {
		t.Errorf("WriteFrame issued %d writes, want 1", recorder.calls)
	}
}

func TestWriteFrameFlushes(t *testing.T) {
	recorder := &flushRecorder{}
	if err := WriteFrame(recorder, &Envelope{}); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if recorder.flushes == 0 {
		t.Error("WriteFrame did not flush a buffering writer")
	}
}

// writeRecorder counts Write calls.
type writeRecorder struct {
	calls int
}

func (r *writeRecorder) Write(p []byte) (int, error) {
	r.calls++
	return len(p), nil
}

// flushRecorder counts Flush calls on top of accepting writes.
type flushRecorder struct {
	writeRecorder
	flushes int
}

func (r *flushRecorder) Flush() error {
	r.flushes++
	return nil
}
