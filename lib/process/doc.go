// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for Courier connector
// binaries. A connector's main() delegates to a run() function
// returning an error and hands the failure to [Fatal]; this keeps raw
// stderr writes out of the connector logic itself, where the
// structured logger is the only sanctioned output path.
package process
