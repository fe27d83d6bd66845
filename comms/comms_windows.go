// Copyright 2026 The Courier Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package comms

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/windows"
)

// openChannel parses a decimal handle value and wraps it after
// verifying it refers to a pipe. The daemon passes anonymous pipe
// handles; any other file type means the variable does not name what
// it claims to.
func openChannel(value, name string) (*os.File, error) {
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing handle: %w", err)
	}
	handle := windows.Handle(parsed)

	fileType, err := windows.GetFileType(handle)
	if err != nil {
		return nil, fmt.Errorf("handle %d failed validation: %w", parsed, err)
	}
	if fileType != windows.FILE_TYPE_PIPE {
		return nil, fmt.Errorf("handle %d is not a pipe (file type %d)", parsed, fileType)
	}
	return os.NewFile(uintptr(handle), name), nil
}
