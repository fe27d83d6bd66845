// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"github.com/bureau-foundation/courier/lib/codec"
	"github.com/bureau-foundation/courier/wire"
)

// Packet is the caller-facing message. Service names the peer service:
// the destination when sending, the source when receiving. Kind is an
// optional tag the daemon ignores but the peer service may dispatch
// on; empty means untagged. Data is the payload value, carried through
// the envelope as schema-encoded bytes.
type Packet[T any] struct {
	Service string
	Kind    string
	Data    T
}

// Send delivers one packet to the daemon for routing to
// packet.Service. The payload is schema-encoded and tagged with its
// type URL; an encode rejection surfaces as *wire.EncodeError before
// anything is written. A packet without a destination service is
// rejected with a *MalformedMessageError rather than handed to the
// daemon, which could not route it.
func Send[T any](conn *Connection, packet Packet[T]) error {
	if packet.Service == "" {
		return &MalformedMessageError{Reason: "missing destination service"}
	}
	value, err := codec.Marshal(packet.Data)
	if err != nil {
		return &wire.EncodeError{Err: err}
	}
	return conn.writeFrame(&wire.Envelope{
		MessageType: packet.Kind,
		Destination: &wire.Address{ServiceName: packet.Service},
		Data: &wire.Payload{
			TypeURL: codec.TypeURL(packet.Data),
			Value:   value,
		},
	})
}

// Receive blocks until one frame arrives on the inbound channel and
// returns it as a Packet.
//
// An envelope without a source service fails with a
// *MalformedMessageError — never a defaulted value, because a
// sourceless envelope means something upstream is broken in a way
// defaulting would mask. An envelope without a payload yields the
// zero value of T: absent data is an ordinary signal-only message,
// not an error. Payload bytes that do not decode as T surface as a
// *wire.DecodeError; the frame is already consumed, so the fault is
// terminal for this call but not for the connection.
func Receive[T any](conn *Connection) (Packet[T], error) {
	envelope, err := conn.readFrame()
	if err != nil {
		return Packet[T]{}, err
	}

	if envelope.Source == nil || envelope.Source.ServiceName == "" {
		return Packet[T]{}, &MalformedMessageError{Reason: "missing source service"}
	}

	packet := Packet[T]{
		Service: envelope.Source.ServiceName,
		Kind:    envelope.MessageType,
	}

	if envelope.Data == nil || len(envelope.Data.Value) == 0 {
		conn.logger.Warn("message without payload", "service", packet.Service, "kind", packet.Kind)
		return packet, nil
	}
	if err := codec.Unmarshal(envelope.Data.Value, &packet.Data); err != nil {
		return Packet[T]{}, &wire.DecodeError{Err: err}
	}
	return packet, nil
}
