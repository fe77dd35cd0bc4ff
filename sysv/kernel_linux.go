// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build linux && (amd64 || arm64)

package sysv

import (
	"errors"
	"os"
	"time"
	"unsafe"

	"github.com/xmidt-org/sysvsem/semaphore"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// semctl commands, from <linux/sem.h>
const (
	cmdGetPID  = 11
	cmdGetAll  = 13
	cmdGetNCnt = 14
)

const (
	semValue    = 0
	semHeadroom = 1
	setSize     = 2
)

// sembuf mirrors struct sembuf
type sembuf struct {
	num uint16
	op  int16
	flg int16
}

// Kernel is the System V semaphore.Kernel.
type Kernel struct {
	config
}

var _ semaphore.Kernel = (*Kernel)(nil)

// New creates a Kernel backed by System V semaphore sets.
func New(o ...Option) *Kernel {
	return &Kernel{config: newConfig(o)}
}

func semget(key semaphore.Key, flags int) (semaphore.ID, error) {
	r1, _, errno := unix.Syscall(unix.SYS_SEMGET, uintptr(key), setSize, uintptr(flags))
	if errno != 0 {
		return -1, errno
	}

	return semaphore.ID(r1), nil
}

func semtimedop(id semaphore.ID, sops []sembuf, timeout *unix.Timespec) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_SEMTIMEDOP,
		uintptr(id),
		uintptr(unsafe.Pointer(&sops[0])),
		uintptr(len(sops)),
		uintptr(unsafe.Pointer(timeout)),
		0, 0,
	)

	if errno != 0 {
		return errno
	}

	return nil
}

// semctl issues commands whose argument is not a pointer.
func semctl(id semaphore.ID, num, cmd int, arg uintptr) (int, error) {
	r1, _, errno := unix.Syscall6(unix.SYS_SEMCTL, uintptr(id), uintptr(num), uintptr(cmd), arg, 0, 0)
	if errno != 0 {
		return -1, errno
	}

	return int(r1), nil
}

func semctlGetAll(id semaphore.ID, values *[setSize]uint16) error {
	_, _, errno := unix.Syscall6(
		unix.SYS_SEMCTL,
		uintptr(id),
		0,
		cmdGetAll,
		uintptr(unsafe.Pointer(values)),
		0, 0,
	)

	if errno != 0 {
		return errno
	}

	return nil
}

func kernelError(op string, key semaphore.Key, id semaphore.ID, err error) error {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return &semaphore.KernelError{Op: op, Key: key, ID: id, Errno: errno}
	}

	return err
}

// idError translates a failure of an operation on an existing set.
func idError(op string, id semaphore.ID, err error) error {
	switch err {
	case unix.EINVAL, unix.EIDRM:
		return semaphore.ErrNotFound
	default:
		return kernelError(op, 0, id, err)
	}
}

// Open creates or attaches to the set for key.  A created set is initialized in the same
// semop that publishes it to attachers, so attachers can tell an initialized set apart
// from one whose creator has not yet run.
func (k *Kernel) Open(key semaphore.Key, flags semaphore.Flags, perm os.FileMode, initial, capacity int) (semaphore.ID, bool, error) {
	if key == 0 {
		return 0, false, semaphore.ErrMissingKey
	}

	if !flags.Valid() {
		return 0, false, semaphore.ErrInvalidFlags
	}

	if !flags.Has(semaphore.Create) {
		id, err := k.attach(key)
		return id, false, err
	}

	if capacity < 1 || capacity > semaphore.MaxValue || initial < 0 || initial > capacity {
		return 0, false, semaphore.ErrInvalidCount
	}

	for attempt := 0; ; attempt++ {
		id, err := semget(key, unix.IPC_CREAT|unix.IPC_EXCL|int(perm.Perm()))
		switch {
		case err == nil:
			if err := k.initialize(key, id, initial, capacity); err != nil {
				return 0, false, err
			}

			return id, true, nil

		case err != unix.EEXIST:
			return 0, false, kernelError("semget", key, 0, err)

		case flags.Has(semaphore.Exclusive):
			return 0, false, semaphore.ErrAlreadyExists
		}

		id, err = k.attach(key)
		if !errors.Is(err, semaphore.ErrNotFound) || attempt >= k.createRetries {
			return id, false, err
		}

		k.logger.Debug("semaphore set removed during attach, retrying create",
			zap.Stringer("key", key),
			zap.Int("attempt", attempt+1),
		)
	}
}

func (k *Kernel) initialize(key semaphore.Key, id semaphore.ID, initial, capacity int) error {
	sops := []sembuf{
		{num: semValue, op: int16(initial)},
		{num: semHeadroom, op: int16(capacity - initial)},
	}

	for {
		err := semtimedop(id, sops, nil)
		if err != unix.EINTR {
			if err != nil {
				// leave nothing half-built behind for attachers to wait on
				semctl(id, 0, unix.IPC_RMID, 0)
				return kernelError("semop", key, id, err)
			}

			return nil
		}
	}
}

// attach opens an existing set and waits, with backoff, until its creator has initialized it.
func (k *Kernel) attach(key semaphore.Key) (semaphore.ID, error) {
	id, err := semget(key, 0)
	switch err {
	case nil:
	case unix.ENOENT:
		return 0, semaphore.ErrNotFound
	default:
		return 0, kernelError("semget", key, 0, err)
	}

	var (
		deadline = time.Now().Add(k.attachTimeout)
		backoff  = time.Millisecond
	)

	for {
		pid, err := semctl(id, semValue, cmdGetPID, 0)
		switch {
		case err != nil:
			return 0, idError("semctl", id, err)

		case pid != 0:
			return id, nil

		case time.Now().After(deadline):
			return 0, ErrNotInitialized
		}

		time.Sleep(backoff)
		if backoff < 50*time.Millisecond {
			backoff *= 2
		}
	}
}

// Acquire decrements the value and increments the headroom in one semop.
func (k *Kernel) Acquire(id semaphore.ID, n int, wait time.Duration) error {
	if n < 1 || n > semaphore.MaxValue {
		return semaphore.ErrInvalidCount
	}

	var (
		flg     int16
		timeout *unix.Timespec
	)

	switch {
	case wait == semaphore.NoWait:
		flg = unix.IPC_NOWAIT

	case wait > 0:
		ts := unix.NsecToTimespec(int64(wait))
		timeout = &ts
	}

	sops := []sembuf{
		{num: semValue, op: int16(-n), flg: flg},
		{num: semHeadroom, op: int16(n), flg: flg},
	}

	err := semtimedop(id, sops, timeout)
	switch err {
	case nil:
		return nil

	case unix.EAGAIN:
		if wait == semaphore.NoWait {
			return semaphore.ErrWouldBlock
		}

		return semaphore.ErrTimeout

	case unix.EINTR:
		return semaphore.ErrInterrupted

	case unix.EIDRM:
		return semaphore.ErrRemovedWhileWaiting

	case unix.EINVAL:
		return semaphore.ErrNotFound

	default:
		return kernelError("semtimedop", 0, id, err)
	}
}

// Release decrements the headroom and increments the value in one semop.  Neither operation
// ever waits, so a release past the capacity fails instead of blocking.
func (k *Kernel) Release(id semaphore.ID, n int) error {
	if n < 1 || n > semaphore.MaxValue {
		return semaphore.ErrInvalidCount
	}

	sops := []sembuf{
		{num: semHeadroom, op: int16(-n), flg: unix.IPC_NOWAIT},
		{num: semValue, op: int16(n), flg: unix.IPC_NOWAIT},
	}

	for {
		err := semtimedop(id, sops, nil)
		switch err {
		case nil:
			return nil

		case unix.EINTR:
			continue

		case unix.EAGAIN, unix.ERANGE:
			return semaphore.ErrCapacityExceeded

		default:
			return idError("semop", id, err)
		}
	}
}

func (k *Kernel) Stat(id semaphore.ID) (semaphore.Stat, error) {
	var values [setSize]uint16
	if err := semctlGetAll(id, &values); err != nil {
		return semaphore.Stat{}, idError("semctl", id, err)
	}

	waiting, err := semctl(id, semValue, cmdGetNCnt, 0)
	if err != nil {
		return semaphore.Stat{}, idError("semctl", id, err)
	}

	pid, err := semctl(id, semValue, cmdGetPID, 0)
	if err != nil {
		return semaphore.Stat{}, idError("semctl", id, err)
	}

	return semaphore.Stat{
		Value:    int(values[semValue]),
		Capacity: int(values[semValue]) + int(values[semHeadroom]),
		Waiting:  waiting,
		LastPID:  pid,
	}, nil
}

func (k *Kernel) Remove(id semaphore.ID) error {
	if _, err := semctl(id, 0, unix.IPC_RMID, 0); err != nil {
		return idError("semctl", id, err)
	}

	return nil
}
