// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

package comms

import (
	"fmt"
	"io"
	"os"
)

// Environment variables naming the channel pair handles.
const (
	InboundChannelVariable  = "COURIER_COMMS_CHANNEL_INFD"
	OutboundChannelVariable = "COURIER_COMMS_CHANNEL_OUTFD"
)

// Pair is the channel pair handed to the connector: one read-only and
// one write-only byte stream, both already open. Ownership passes to
// connector.Connect; the pair lives for the process's lifetime and is
// never recreated.
type Pair struct {
	Inbound  io.ReadCloser
	Outbound io.WriteCloser
}

// Close closes both channels, reporting the first error.
func (p *Pair) Close() error {
	inboundErr := p.Inbound.Close()
	outboundErr := p.Outbound.Close()
	if inboundErr != nil {
		return inboundErr
	}
	return outboundErr
}

// EnvironmentError reports a channel variable that is missing or does
// not name a usable handle. Value is empty when the variable was not
// set at all.
type EnvironmentError struct {
	Variable string
	Value    string
	Err      error
}

func (e *EnvironmentError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("communication channel variable %s is not set", e.Variable)
	}
	return fmt.Sprintf("invalid communication channel value %q in %s: %v", e.Value, e.Variable, e.Err)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// FromEnvironment opens the channel pair named by the environment.
// Any failure — either variable missing, unparsable, or naming a
// handle that fails platform validation — surfaces as an
// *EnvironmentError and must be treated as fatal at startup.
func FromEnvironment() (*Pair, error) {
	inbound, err := channelFromVariable(InboundChannelVariable, "courier-inbound")
	if err != nil {
		return nil, err
	}
	outbound, err := channelFromVariable(OutboundChannelVariable, "courier-outbound")
	if err != nil {
		inbound.Close()
		return nil, err
	}
	return &Pair{Inbound: inbound, Outbound: outbound}, nil
}

// channelFromVariable resolves one environment variable to an open
// file. openChannel is the per-platform parse-and-validate step.
func channelFromVariable(variable, name string) (*os.File, error) {
	value, ok := os.LookupEnv(variable)
	if !ok {
		return nil, &EnvironmentError{Variable: variable}
	}
	file, err := openChannel(value, name)
	if err != nil {
		return nil, &EnvironmentError{Variable: variable, Value: value, Err: err}
	}
	return file, nil
}
