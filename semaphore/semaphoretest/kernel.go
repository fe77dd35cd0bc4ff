// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphoretest

import (
	"os"
	"sync"
	"time"

	"github.com/xmidt-org/sysvsem/semaphore"
)

type object struct {
	id       semaphore.ID
	key      semaphore.Key
	perm     os.FileMode
	value    int
	capacity int
	waiters  int
	lastPID  int
	removed  bool

	// changed is closed, then replaced, whenever value or removed changes
	changed chan struct{}

	// interrupted is closed, then replaced, by Kernel.Interrupt
	interrupted chan struct{}
}

func (o *object) broadcast() {
	close(o.changed)
	o.changed = make(chan struct{})
}

// Kernel is an in-memory semaphore.Kernel.  The zero value is not usable; use NewKernel.
// A Kernel is safe for concurrent use.
type Kernel struct {
	lock   sync.Mutex
	nextID semaphore.ID
	pid    int
	keys   map[semaphore.Key]*object
	ids    map[semaphore.ID]*object
}

var _ semaphore.Kernel = (*Kernel)(nil)

// NewKernel creates an empty Kernel.
func NewKernel() *Kernel {
	return &Kernel{
		pid:  os.Getpid(),
		keys: make(map[semaphore.Key]*object),
		ids:  make(map[semaphore.ID]*object),
	}
}

func (k *Kernel) Open(key semaphore.Key, flags semaphore.Flags, perm os.FileMode, initial, capacity int) (semaphore.ID, bool, error) {
	if key == 0 {
		return 0, false, semaphore.ErrMissingKey
	}

	if !flags.Valid() {
		return 0, false, semaphore.ErrInvalidFlags
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	if o, ok := k.keys[key]; ok {
		if flags.Has(semaphore.Create | semaphore.Exclusive) {
			return 0, false, semaphore.ErrAlreadyExists
		}

		return o.id, false, nil
	}

	if !flags.Has(semaphore.Create) {
		return 0, false, semaphore.ErrNotFound
	}

	if capacity < 1 || capacity > semaphore.MaxValue || initial < 0 || initial > capacity {
		return 0, false, semaphore.ErrInvalidCount
	}

	k.nextID++
	o := &object{
		id:          k.nextID,
		key:         key,
		perm:        perm,
		value:       initial,
		capacity:    capacity,
		lastPID:     k.pid,
		changed:     make(chan struct{}),
		interrupted: make(chan struct{}),
	}

	k.keys[key] = o
	k.ids[o.id] = o
	return o.id, true, nil
}

func (k *Kernel) Acquire(id semaphore.ID, n int, wait time.Duration) error {
	if n < 1 || n > semaphore.MaxValue {
		return semaphore.ErrInvalidCount
	}

	k.lock.Lock()
	o, ok := k.ids[id]
	if !ok {
		k.lock.Unlock()
		return semaphore.ErrNotFound
	}

	var timeout <-chan time.Time
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		if o.removed {
			k.lock.Unlock()
			return semaphore.ErrRemovedWhileWaiting
		}

		if o.value >= n {
			o.value -= n
			o.lastPID = k.pid
			o.broadcast()
			k.lock.Unlock()
			return nil
		}

		if wait == semaphore.NoWait {
			k.lock.Unlock()
			return semaphore.ErrWouldBlock
		}

		o.waiters++
		changed, interrupted := o.changed, o.interrupted
		k.lock.Unlock()

		var err error
		select {
		case <-changed:
		case <-interrupted:
			err = semaphore.ErrInterrupted
		case <-timeout:
			err = semaphore.ErrTimeout
		}

		k.lock.Lock()
		o.waiters--
		if err != nil {
			k.lock.Unlock()
			return err
		}
	}
}

func (k *Kernel) Release(id semaphore.ID, n int) error {
	if n < 1 || n > semaphore.MaxValue {
		return semaphore.ErrInvalidCount
	}

	k.lock.Lock()
	defer k.lock.Unlock()

	o, ok := k.ids[id]
	if !ok {
		return semaphore.ErrNotFound
	}

	if o.value+n > o.capacity {
		return semaphore.ErrCapacityExceeded
	}

	o.value += n
	o.lastPID = k.pid
	o.broadcast()
	return nil
}

func (k *Kernel) Stat(id semaphore.ID) (semaphore.Stat, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	o, ok := k.ids[id]
	if !ok {
		return semaphore.Stat{}, semaphore.ErrNotFound
	}

	return semaphore.Stat{
		Value:    o.value,
		Capacity: o.capacity,
		Waiting:  o.waiters,
		LastPID:  o.lastPID,
	}, nil
}

func (k *Kernel) Remove(id semaphore.ID) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	o, ok := k.ids[id]
	if !ok {
		return semaphore.ErrNotFound
	}

	delete(k.ids, id)
	delete(k.keys, o.key)
	o.removed = true
	o.broadcast()
	return nil
}

// Interrupt wakes every acquirer currently blocked on the object with semaphore.ErrInterrupted,
// the way a signal would.  The object's value is not changed.
func (k *Kernel) Interrupt(id semaphore.ID) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	o, ok := k.ids[id]
	if !ok {
		return semaphore.ErrNotFound
	}

	close(o.interrupted)
	o.interrupted = make(chan struct{})
	return nil
}

// Exists reports whether an object is registered for key.
func (k *Kernel) Exists(key semaphore.Key) bool {
	k.lock.Lock()
	defer k.lock.Unlock()

	_, ok := k.keys[key]
	return ok
}

// Perm returns the permission mask an object was created with.
func (k *Kernel) Perm(id semaphore.ID) (os.FileMode, error) {
	k.lock.Lock()
	defer k.lock.Unlock()

	o, ok := k.ids[id]
	if !ok {
		return 0, semaphore.ErrNotFound
	}

	return o.perm, nil
}

// WaitForWaiters polls until at least n acquirers are blocked on the object, returning false if
// that does not happen within the timeout.
func (k *Kernel) WaitForWaiters(id semaphore.ID, n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		st, err := k.Stat(id)
		if err == nil && st.Waiting >= n {
			return true
		}

		if time.Now().After(deadline) {
			return false
		}

		time.Sleep(time.Millisecond)
	}
}
