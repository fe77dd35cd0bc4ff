// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"os"
	"time"
)

const (
	// WaitForever tells Kernel.Acquire to block until units are available.
	WaitForever time.Duration = -1

	// NoWait tells Kernel.Acquire to fail with ErrWouldBlock instead of blocking.
	NoWait time.Duration = 0
)

// ID is the opaque identifier a Kernel hands out for an opened object.  It is only
// meaningful to the process that obtained it.
type ID int

// Stat is a diagnostic snapshot of a semaphore.  Value and Capacity are read together
// atomically; Waiting and LastPID are separate reads.  Other processes may change the
// object at any moment, so a Stat must never drive locking decisions.
type Stat struct {
	// Value is the number of units currently available.
	Value int `json:"value" codec:"value"`

	// Capacity is the largest value the semaphore may reach.
	Capacity int `json:"capacity" codec:"capacity"`

	// Waiting is the number of threads blocked acquiring.
	Waiting int `json:"waiting" codec:"waiting"`

	// LastPID is the process that performed the last operation.
	LastPID int `json:"lastPID" codec:"lastPID"`
}

// Kernel is the inter-process semaphore facility.  Implementations must perform every Acquire
// and Release as one atomic operation, so that two callers racing for the last unit never
// both succeed.
//
// Failures covered by this package's sentinel errors are reported with those errors.  Anything
// else should be a *KernelError.
type Kernel interface {
	// Open creates or attaches to the object for key.  The returned bool is true when this call
	// created the object, in which case its value is initial and its capacity is capacity.
	Open(key Key, flags Flags, perm os.FileMode, initial, capacity int) (ID, bool, error)

	// Acquire atomically takes n units.  A negative wait blocks until the units are available,
	// NoWait returns ErrWouldBlock immediately, and a positive wait returns ErrTimeout once
	// it elapses.
	Acquire(id ID, n int, wait time.Duration) error

	// Release atomically returns n units without blocking.
	Release(id ID, n int) error

	// Stat reports the current state of the object.
	Stat(id ID) (Stat, error)

	// Remove destroys the object.  Blocked acquirers fail with ErrRemovedWhileWaiting.
	Remove(id ID) error
}
