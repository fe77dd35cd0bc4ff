// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphoretest provides an in-process semaphore.Kernel for tests.

The Kernel here keeps its objects in memory, so every "process" is simply a goroutine with its own
handle.  Blocking acquires really block, waiters are counted, and removal wakes waiters with
semaphore.ErrRemovedWhileWaiting, which makes it possible to test multi-process protocols
without touching the operating system.
*/
package semaphoretest
