// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Interface represents a semaphore shared between processes, either binary or counting.  When any
// acquire method is successful, Release *must* eventually be called, by this or any other process,
// to return the units to the semaphore.
type Interface interface {
	// Acquire takes one unit, blocking until one is available.  The wait ends early with
	// ErrInterrupted or ErrRemovedWhileWaiting.
	Acquire() error

	// AcquireN takes n units atomically.  It never takes fewer than n.
	AcquireN(n int) error

	// AcquireWait takes one unit, giving up with ErrTimeout after the given duration.
	AcquireWait(time.Duration) error

	// AcquireCtx takes one unit before the given context is canceled.  If the context is
	// canceled first, this method returns ctx.Err().
	AcquireCtx(context.Context) error

	// TryAcquire takes one unit only if one is immediately available.
	TryAcquire() (bool, error)

	// Release returns one unit.  It never blocks.
	Release() error

	// ReleaseN returns n units atomically.
	ReleaseN(n int) error

	// Value returns the number of available units.  The result is diagnostic only.
	Value() (int, error)

	// Waiting returns the number of blocked acquirers.  The result is diagnostic only.
	Waiting() (int, error)

	// Destroy removes the semaphore for every process.
	Destroy() error
}

const (
	stateOpen      int32 = 0
	stateDestroyed int32 = 1
)

// Semaphore is this process's handle on a kernel semaphore.  Handles are not transferable
// between processes; each process opens the key itself.
type Semaphore struct {
	kernel       Kernel
	key          Key
	id           ID
	created      bool
	pollInterval time.Duration
	logger       *zap.Logger

	state int32
}

var _ Interface = (*Semaphore)(nil)

// Open creates or attaches to the semaphore for key.  This function panics if k is nil.
//
// With Create, a missing object is created using the initial value and capacity from the
// options.  With Create|Exclusive, an existing object results in ErrAlreadyExists.  Without
// Create, a missing object results in ErrNotFound, and Exclusive results in ErrInvalidFlags.
// A zero key results in ErrMissingKey before the kernel is consulted.
func Open(k Kernel, key Key, flags Flags, o ...Option) (*Semaphore, error) {
	if k == nil {
		panic("A Kernel is required")
	}

	if key == 0 {
		return nil, ErrMissingKey
	}

	if !flags.Valid() {
		return nil, ErrInvalidFlags
	}

	s := newSettings(o)
	if s.capacity < 1 || s.capacity > MaxValue || s.initial < 0 || s.initial > s.capacity {
		return nil, ErrInvalidCount
	}

	id, created, err := k.Open(key, flags, s.perm, s.initial, s.capacity)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.Stringer("key", key), zap.Int("id", int(id)))
	if created {
		logger.Info("semaphore created",
			zap.Int("initial", s.initial),
			zap.Int("capacity", s.capacity),
			zap.Stringer("perm", s.perm),
		)
	} else {
		logger.Debug("semaphore attached", zap.Stringer("flags", flags))
	}

	return &Semaphore{
		kernel:       k,
		key:          key,
		id:           id,
		created:      created,
		pollInterval: s.pollInterval,
		logger:       logger,
	}, nil
}

// Key returns the key this semaphore was opened with.
func (s *Semaphore) Key() Key {
	return s.key
}

// ID returns the kernel identifier of this handle.
func (s *Semaphore) ID() ID {
	return s.id
}

// Created reports whether Open created the object rather than attaching to it.
func (s *Semaphore) Created() bool {
	return s.created
}

func (s *Semaphore) checkDestroyed() bool {
	return atomic.LoadInt32(&s.state) == stateDestroyed
}

func (s *Semaphore) Acquire() error {
	return s.AcquireN(1)
}

func (s *Semaphore) AcquireN(n int) error {
	if n < 1 {
		return ErrInvalidCount
	}

	if s.checkDestroyed() {
		return ErrNotFound
	}

	return s.kernel.Acquire(s.id, n, WaitForever)
}

func (s *Semaphore) AcquireWait(timeout time.Duration) error {
	if s.checkDestroyed() {
		return ErrNotFound
	}

	if timeout <= 0 {
		ok, err := s.TryAcquire()
		if err == nil && !ok {
			err = ErrTimeout
		}

		return err
	}

	return s.kernel.Acquire(s.id, 1, timeout)
}

// AcquireCtx waits in bounded kernel slices so that cancellation is noticed.  Each slice is a
// single atomic kernel operation.  A slice cut short by a signal is retried.
func (s *Semaphore) AcquireCtx(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.checkDestroyed() {
			return ErrNotFound
		}

		wait := s.pollInterval
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); remaining < wait {
				wait = remaining
			}
		}

		if wait <= 0 {
			return context.DeadlineExceeded
		}

		err := s.kernel.Acquire(s.id, 1, wait)
		switch {
		case err == nil:
			return nil

		case errors.Is(err, ErrTimeout), errors.Is(err, ErrInterrupted):
			continue

		default:
			return err
		}
	}
}

func (s *Semaphore) TryAcquire() (bool, error) {
	return s.TryAcquireN(1)
}

// TryAcquireN takes n units only if all of them are immediately available.
func (s *Semaphore) TryAcquireN(n int) (bool, error) {
	if n < 1 {
		return false, ErrInvalidCount
	}

	if s.checkDestroyed() {
		return false, ErrNotFound
	}

	err := s.kernel.Acquire(s.id, n, NoWait)
	switch {
	case err == nil:
		return true, nil

	case errors.Is(err, ErrWouldBlock):
		return false, nil

	default:
		return false, err
	}
}

func (s *Semaphore) Release() error {
	return s.ReleaseN(1)
}

func (s *Semaphore) ReleaseN(n int) error {
	if n < 1 {
		return ErrInvalidCount
	}

	if s.checkDestroyed() {
		return ErrNotFound
	}

	return s.kernel.Release(s.id, n)
}

// Stat returns a diagnostic snapshot of the semaphore.
func (s *Semaphore) Stat() (Stat, error) {
	if s.checkDestroyed() {
		return Stat{}, ErrNotFound
	}

	return s.kernel.Stat(s.id)
}

func (s *Semaphore) Value() (int, error) {
	st, err := s.Stat()
	return st.Value, err
}

func (s *Semaphore) Waiting() (int, error) {
	st, err := s.Stat()
	return st.Waiting, err
}

// Capacity returns the ceiling fixed when the object was created.
func (s *Semaphore) Capacity() (int, error) {
	st, err := s.Stat()
	return st.Capacity, err
}

// Destroy removes the semaphore.  Afterwards every operation on this handle, and on other
// handles for the same object, fails with ErrNotFound.  Opening the key again with Create
// yields a fresh object.
func (s *Semaphore) Destroy() error {
	if !atomic.CompareAndSwapInt32(&s.state, stateOpen, stateDestroyed) {
		return ErrNotFound
	}

	if err := s.kernel.Remove(s.id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			// the object is still there, so this handle remains usable
			atomic.StoreInt32(&s.state, stateOpen)
		}

		return err
	}

	s.logger.Info("semaphore destroyed")
	return nil
}
