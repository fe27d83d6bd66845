// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec is the schema codec for everything Courier puts on the
// wire: the envelope that frames carry and the payload values tucked
// inside it. It wraps fxamacker/cbor configured for Core Deterministic
// Encoding so that the same logical message always encodes to the same
// bytes, which keeps byte-level interoperability with the supervising
// daemon unambiguous.
//
// [TypeURL] derives the type tag recorded next to a payload's bytes in
// the envelope. The tag is advisory metadata for the receiving service;
// Courier itself never dispatches on it.
package codec
