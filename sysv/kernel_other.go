// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !linux || !(amd64 || arm64)

package sysv

import (
	"os"
	"time"

	"github.com/xmidt-org/sysvsem/semaphore"
)

// Kernel is a placeholder on platforms without System V semaphore support.
type Kernel struct {
	config
}

var _ semaphore.Kernel = (*Kernel)(nil)

// New returns a Kernel whose methods all fail with ErrUnsupported.
func New(o ...Option) *Kernel {
	return &Kernel{config: newConfig(o)}
}

func (k *Kernel) Open(semaphore.Key, semaphore.Flags, os.FileMode, int, int) (semaphore.ID, bool, error) {
	return 0, false, ErrUnsupported
}

func (k *Kernel) Acquire(semaphore.ID, int, time.Duration) error {
	return ErrUnsupported
}

func (k *Kernel) Release(semaphore.ID, int) error {
	return ErrUnsupported
}

func (k *Kernel) Stat(semaphore.ID) (semaphore.Stat, error) {
	return semaphore.Stat{}, ErrUnsupported
}

func (k *Kernel) Remove(semaphore.ID) error {
	return ErrUnsupported
}
