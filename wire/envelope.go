// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// Address names a service endpoint on one side of the daemon.
type Address struct {
	ServiceName string `cbor:"service_name,omitempty"`
}

// Payload carries a schema-encoded value together with its advisory
// type tag. The daemon routes on the envelope, never on the payload;
// TypeURL exists for the receiving service's benefit.
type Payload struct {
	TypeURL string `cbor:"type_url,omitempty"`
	Value   []byte `cbor:"value,omitempty"`
}

// Envelope is the wire-level message unit. Destination, Source, and
// Data are pointers so that presence is distinguishable from the zero
// value: an inbound envelope without a Source is a protocol violation,
// not an envelope from the empty service.
type Envelope struct {
	MessageType string   `cbor:"message_type,omitempty"`
	Destination *Address `cbor:"destination,omitempty"`
	Source      *Address `cbor:"source,omitempty"`
	Data        *Payload `cbor:"data,omitempty"`
}
