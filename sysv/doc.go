// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package sysv is the production semaphore.Kernel, backed by System V semaphore sets.

Each key owns a set of two kernel semaphores.  The first holds the value that acquirers
decrement.  The second holds the headroom, the capacity minus the value.  Every operation
adjusts both in a single semop call, so a release that would exceed the capacity is rejected
atomically by the kernel rather than by a read followed by a write.

Kernel objects persist until removed, even after every process using them has exited.  No
SEM_UNDO adjustment is requested, so a process that exits while holding units does not give
them back.  Use semctl(1)-style tooling, or ipcrm(1), to clean up after crashed processes.

Only linux on amd64 and arm64 is supported.  Elsewhere, New returns a Kernel whose methods
all fail with ErrUnsupported.
*/
package sysv
