// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Courier packages.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with a time.After fallback) so that individual
// tests do not need direct time.After calls. These helpers are the only
// place the test suite touches the real wall clock; everything timed in
// the connector itself runs on lib/clock and is tested with the fake.
package testutil
