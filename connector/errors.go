// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package connector

import (
	"errors"
	"fmt"
)

// ErrPoisoned matches any *PoisonedError via errors.Is. Callers that
// only need the yes/no answer test against this sentinel; callers that
// want the original fault use errors.As with *PoisonedError.
var ErrPoisoned = errors.New("connection is poisoned")

// PoisonedError is returned by every operation on a connection that
// has already observed an I/O or framing fault. Fault is the error
// that poisoned the connection.
type PoisonedError struct {
	Fault error
}

func (e *PoisonedError) Error() string {
	return fmt.Sprintf("connection is poisoned by earlier fault: %v", e.Fault)
}

func (e *PoisonedError) Unwrap() error { return e.Fault }

// Is reports true for ErrPoisoned so errors.Is(err, ErrPoisoned) works
// without unwrapping to the concrete type.
func (e *PoisonedError) Is(target error) bool { return target == ErrPoisoned }

// MalformedMessageError reports an envelope that parsed correctly but
// violates an application invariant: an inbound envelope without a
// source service, or an outbound packet without a destination. The
// missing-source case is a deliberate hard failure rather than a
// silent default — an envelope without a source indicates a protocol
// violation upstream that defaulting would only mask.
type MalformedMessageError struct {
	Reason string
}

func (e *MalformedMessageError) Error() string {
	return "malformed message: " + e.Reason
}
