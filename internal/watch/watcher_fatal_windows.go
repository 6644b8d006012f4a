// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Windows system error codes from the Win32 API.
const (
	// ERROR_TOO_MANY_OPEN_FILES (4): per-process handle limit exceeded.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): the watched directory was deleted or its
	// handle invalidated.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): cannot allocate the ReadDirectoryChangesW
	// notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// isFatalFsnotifyError classifies fsnotify errors the watcher cannot recover
// from. ReadDirectoryChangesW has no inotify-style watch limits, but handle
// exhaustion and invalidation still leave the watcher broken.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
