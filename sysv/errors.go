// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package sysv

import "errors"

var (
	// ErrUnsupported is returned by every Kernel method on platforms without System V semaphores.
	ErrUnsupported = errors.New("System V semaphores are not supported on this platform")

	// ErrNotInitialized is returned when attaching to a semaphore set whose creator never
	// initialized it within the attach timeout, e.g. because the creator crashed.
	ErrNotInitialized = errors.New("the semaphore set was never initialized by its creator")

	// ErrInvalidProjectID is returned by Ftok for a zero project identifier.
	ErrInvalidProjectID = errors.New("ftok project identifiers must be nonzero")
)
