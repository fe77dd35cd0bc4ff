// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import "context"

// Mutex is a binary semaphore: 1 means unlocked and 0 means locked.  Any process holding the
// key may lock, release, inspect, or delete it.
type Mutex struct {
	s Interface
}

// OpenMutex opens the binary semaphore for key.  A newly created mutex starts unlocked.  Any
// initial value or capacity supplied in the options is ignored.  Attaching to an existing
// object whose capacity is not 1 fails with ErrNotMutex.
func OpenMutex(k Kernel, key Key, flags Flags, o ...Option) (*Mutex, error) {
	s, err := OpenBinary(k, key, flags, o...)
	if err != nil {
		return nil, err
	}

	return NewMutex(s), nil
}

// OpenBinary opens the binary semaphore for key with the same rules as OpenMutex, but returns
// the underlying Semaphore.
func OpenBinary(k Kernel, key Key, flags Flags, o ...Option) (*Semaphore, error) {
	o = append(o[:len(o):len(o)], WithInitial(1), WithCapacity(1))
	s, err := Open(k, key, flags, o...)
	if err != nil {
		return nil, err
	}

	if !s.Created() {
		capacity, err := s.Capacity()
		if err != nil {
			return nil, err
		}

		if capacity != 1 {
			return nil, ErrNotMutex
		}
	}

	return s, nil
}

// NewMutex treats an already opened binary semaphore, possibly decorated, as a Mutex.
func NewMutex(s Interface) *Mutex {
	return &Mutex{s: s}
}

// Lock blocks until the mutex is locked by this caller.  Calling Lock twice without a
// Release in between blocks forever, since ownership is not tracked.
func (m *Mutex) Lock() error {
	return m.s.Acquire()
}

// LockCtx is Lock with cancellation.
func (m *Mutex) LockCtx(ctx context.Context) error {
	return m.s.AcquireCtx(ctx)
}

// TryLock locks the mutex only if it is currently unlocked.
func (m *Mutex) TryLock() (bool, error) {
	return m.s.TryAcquire()
}

// Release unlocks the mutex.  Releasing a mutex that is not locked fails with
// ErrCapacityExceeded and leaves it unlocked.
func (m *Mutex) Release() error {
	return m.s.Release()
}

// Unlock is an alias for Release.
func (m *Mutex) Unlock() error {
	return m.Release()
}

// Locked reports whether the mutex is currently locked.
func (m *Mutex) Locked() (bool, error) {
	v, err := m.s.Value()
	if err != nil {
		return false, err
	}

	return v == 0, nil
}

// Waiting returns how many callers are blocked in Lock.
func (m *Mutex) Waiting() (int, error) {
	return m.s.Waiting()
}

// Delete destroys the mutex for every process.
func (m *Mutex) Delete() error {
	return m.s.Destroy()
}

// Do locks the mutex, runs f, and releases the mutex on every exit path.
func (m *Mutex) Do(ctx context.Context, f func() error) error {
	return Do(ctx, m.s, f)
}
