// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	// ErrMissingKey is returned when a semaphore is opened without a key.  No kernel resource
	// is allocated in that case.
	ErrMissingKey = errors.New("a semaphore key is required")

	// ErrAlreadyExists is returned when Create|Exclusive is requested but an object already
	// exists for the key.  Opening again without Exclusive attaches to it.
	ErrAlreadyExists = errors.New("the semaphore already exists")

	// ErrNotFound is returned when no object backs a key, or when a handle is used after
	// its semaphore was destroyed.
	ErrNotFound = errors.New("the semaphore does not exist")

	// ErrInterrupted is returned when a blocking acquire was interrupted, e.g. by a signal,
	// before any units were taken.  The semaphore value is unchanged.
	ErrInterrupted = errors.New("the semaphore wait was interrupted")

	// ErrRemovedWhileWaiting is returned from a blocked acquire when another process
	// destroyed the semaphore.
	ErrRemovedWhileWaiting = errors.New("the semaphore was removed while waiting")

	// ErrCapacityExceeded is returned when a release would push the value past the
	// semaphore's capacity, e.g. releasing a mutex that is not locked.
	ErrCapacityExceeded = errors.New("the release would exceed the semaphore capacity")

	// ErrTimeout is returned when a bounded wait elapses before the semaphore could be acquired.
	// This error does not apply when using a context.  ctx.Err() is returned in that case.
	ErrTimeout = errors.New("the semaphore could not be acquired within the timeout")

	// ErrWouldBlock is returned by a Kernel when a non-blocking acquire finds too few units.
	ErrWouldBlock = errors.New("the semaphore could not be acquired without blocking")

	// ErrInvalidFlags is returned when Exclusive is requested without Create, or when unknown
	// flag bits are set.
	ErrInvalidFlags = errors.New("the semaphore flags are invalid: exclusive requires create")

	// ErrInvalidCount is returned for unit counts, initial values, or capacities that are out of range.
	ErrInvalidCount = errors.New("the semaphore count is out of range")

	// ErrNotMutex is returned by OpenMutex when the existing object is not a binary semaphore.
	ErrNotMutex = errors.New("the semaphore is not a binary semaphore")
)

// KernelError is an operating system failure that this package does not interpret, such as
// EACCES or ENOSPC.  The raw errno is available through errors.Is/errors.As.
type KernelError struct {
	// Op is the kernel call that failed, e.g. "semget".
	Op string

	// Key is the semaphore key, when known.
	Key Key

	// ID is the kernel identifier, when known.
	ID ID

	// Errno is the operating system error code.
	Errno syscall.Errno
}

func (ke *KernelError) Error() string {
	return fmt.Sprintf("%s failed [key=%s id=%d]: %s (errno %d)", ke.Op, ke.Key, ke.ID, ke.Errno.Error(), int(ke.Errno))
}

func (ke *KernelError) Unwrap() error {
	return ke.Errno
}
