// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/bureau-foundation/courier/lib/codec"
)

// Magic is the frame terminator and handshake token. Both sides write
// it little-endian; any other value on the stream means the channel
// pair is misconfigured or desynchronized and must not be used further.
const Magic uint32 = 0xF1EE1001

// magicLength and lengthFieldLength are both 4: one u32 each.
const (
	lengthFieldLength = 4
	magicLength       = 4
)

// FramingError reports a magic mismatch, during the handshake or at a
// frame boundary. It carries the value actually read so that logs of a
// swapped or misconfigured channel pair show what arrived instead.
type FramingError struct {
	// Magic is the 4-byte value read where the magic was expected.
	Magic uint32
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("invalid frame magic: 0x%08X", e.Magic)
}

// EncodeError reports an envelope the schema codec rejected or whose
// encoding exceeds the 32-bit length field. Nothing has been written
// to the stream when WriteFrame returns an EncodeError.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encoding envelope: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a frame body that does not parse as an envelope.
// The frame boundary itself was located correctly (length and trailing
// magic were consumed and verified), so the stream position remains
// valid after a DecodeError.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding envelope: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// flusher matches writers with buffered output that must be pushed to
// the underlying channel (bufio.Writer and friends). Raw pipe files
// need no flushing and do not implement it.
type flusher interface {
	Flush() error
}

// MarshalFrame encodes an envelope into one complete frame: length
// prefix, CBOR body, trailing magic. Returns an *EncodeError when the
// codec rejects the envelope or the body exceeds the u32 length field.
func MarshalFrame(envelope *Envelope) ([]byte, error) {
	body, err := codec.Marshal(envelope)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	if uint64(len(body)) > math.MaxUint32 {
		return nil, &EncodeError{Err: fmt.Errorf("envelope body is %d bytes, exceeding the 32-bit length field", len(body))}
	}

	frame := make([]byte, lengthFieldLength+len(body)+magicLength)
	binary.LittleEndian.PutUint32(frame[0:lengthFieldLength], uint32(len(body)))
	copy(frame[lengthFieldLength:], body)
	binary.LittleEndian.PutUint32(frame[lengthFieldLength+len(body):], Magic)
	return frame, nil
}

// WriteFrame marshals the envelope and writes the frame to w as a
// single Write call, then flushes when w buffers output. Marshalling
// completes before the first byte is written, so a rejected envelope
// never leaves a partial frame on the stream.
func WriteFrame(w io.Writer, envelope *Envelope) error {
	frame, err := MarshalFrame(envelope)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return flush(w)
}

// ReadFrame reads one frame from r, blocking until the full frame
// arrives or the stream ends. Short reads and stream closure surface
// as I/O errors; a trailing-magic mismatch surfaces as *FramingError;
// a body that is not a valid envelope surfaces as *DecodeError. The
// trailing magic is verified before the body is parsed, so a
// DecodeError never indicates a lost frame boundary.
func ReadFrame(r io.Reader) (*Envelope, error) {
	var lengthField [lengthFieldLength]byte
	if _, err := io.ReadFull(r, lengthField[:]); err != nil {
		return nil, fmt.Errorf("reading frame length: %w", err)
	}
	length := binary.LittleEndian.Uint32(lengthField[:])

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("reading frame body: %w", err)
	}

	if err := readMagic(r); err != nil {
		return nil, err
	}

	var envelope Envelope
	if err := codec.Unmarshal(body, &envelope); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &envelope, nil
}

// writeMagic writes the 4-byte magic to w.
func writeMagic(w io.Writer) error {
	var buffer [magicLength]byte
	binary.LittleEndian.PutUint32(buffer[:], Magic)
	if _, err := w.Write(buffer[:]); err != nil {
		return fmt.Errorf("writing magic: %w", err)
	}
	return nil
}

// readMagic reads 4 bytes from r and compares them to the magic.
func readMagic(r io.Reader) error {
	var buffer [magicLength]byte
	if _, err := io.ReadFull(r, buffer[:]); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if got := binary.LittleEndian.Uint32(buffer[:]); got != Magic {
		return &FramingError{Magic: got}
	}
	return nil
}

// flush pushes buffered bytes to the underlying channel when w
// buffers output.
func flush(w io.Writer) error {
	f, ok := w.(flusher)
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return fmt.Errorf("flushing output channel: %w", err)
	}
	return nil
}
