// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package sysv

import (
	"fmt"

	"github.com/xmidt-org/sysvsem/semaphore"
	"golang.org/x/sys/unix"
)

// Ftok derives a key from an existing file and a nonzero project identifier, the same way the C
// library's ftok(3) does.  Processes that agree on the path and project identifier agree on the
// key without any other coordination.  The key changes if the file is replaced.
func Ftok(path string, projID byte) (semaphore.Key, error) {
	if projID == 0 {
		return 0, ErrInvalidProjectID
	}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("ftok %s: %w", path, err)
	}

	k := uint32(projID)<<24 | (uint32(uint64(st.Dev))&0xff)<<16 | uint32(uint64(st.Ino))&0xffff
	return semaphore.Key(int32(k)), nil
}
