// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for Courier's timed code paths: the
// heartbeat scheduler's sleep between beats and the throttle's
// last-sent bookkeeping. Production code injects [Real]; tests inject
// [Fake] and drive time explicitly with Advance, so heartbeat timing
// tests are deterministic instead of sleep-and-hope.
//
// Any Courier function that would call time.Now, time.After, or
// time.Sleep accepts a Clock (or is a method on a struct carrying one)
// instead of reaching for the time package directly.
package clock
