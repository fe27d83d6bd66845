// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package comms

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

// openChannel parses a decimal file descriptor and wraps it after
// verifying it is open. The fcntl F_GETFD probe catches a descriptor
// the daemon never actually passed (or that something closed between
// fork and here) without disturbing its state.
func openChannel(value, name string) (*os.File, error) {
	descriptor, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("parsing file descriptor: %w", err)
	}
	if descriptor < 0 {
		return nil, fmt.Errorf("negative file descriptor %d", descriptor)
	}
	if _, err := unix.FcntlInt(uintptr(descriptor), unix.F_GETFD, 0); err != nil {
		return nil, fmt.Errorf("file descriptor %d is not open: %w", descriptor, err)
	}
	return os.NewFile(uintptr(descriptor), name), nil
}
