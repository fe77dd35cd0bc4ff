// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides counting semaphores and binary mutexes that are shared between processes.

A semaphore is addressed by an integer Key agreed upon out-of-band.  Every process that opens the
same key with the same Kernel facility attaches to the same object, and every acquire or release
is a single atomic operation performed by that facility.  There is no coordinator process.  The
production facility lives in the sysv package; semaphoretest supplies an in-process one for tests.

A Mutex is a semaphore whose value is either 0 (locked) or 1 (unlocked).  Ownership is not
tracked: any process that knows the key may release a mutex, including one that never locked it.
This type guards access windows, not owners.

Holding a lock does not survive process termination.  A process that exits while holding a Mutex
leaves it locked until some other process calls Release or Delete.  Use Do, or a signal handler,
to release on every exit path.
*/
package semaphore
