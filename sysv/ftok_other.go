// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package sysv

import "github.com/xmidt-org/sysvsem/semaphore"

// Ftok is not available on this platform.
func Ftok(string, byte) (semaphore.Key, error) {
	return 0, ErrUnsupported
}
