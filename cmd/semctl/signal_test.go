// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/sysvsem/logging"
)

func testSignalWaitBasic(t *testing.T) {
	var (
		assert  = assert.New(t)
		logger  = logging.NewTestLogger(nil, t)
		signals = make(chan os.Signal)

		started  = new(sync.WaitGroup)
		finished = make(chan os.Signal)
	)

	defer close(signals)
	started.Add(1)
	go func() {
		started.Done()
		finished <- signalWait(logger, signals, syscall.SIGTERM)
	}()

	started.Wait()

	signals <- syscall.SIGHUP
	select {
	case <-finished:
		assert.Fail("SIGHUP should not have ended signalWait")
	default:
		// passing
	}

	signals <- syscall.SIGTERM
	select {
	case actual := <-finished:
		assert.Equal(syscall.SIGTERM, actual)
	case <-time.After(10 * time.Second):
		assert.Fail("signalWait did not complete within the timeout")
	}
}

func testSignalWaitForever(t *testing.T) {
	var (
		assert  = assert.New(t)
		logger  = logging.NewTestLogger(nil, t)
		signals = make(chan os.Signal)

		started  = new(sync.WaitGroup)
		finished = make(chan os.Signal)
	)

	started.Add(1)
	go func() {
		started.Done()
		finished <- signalWait(logger, signals)
	}()

	started.Wait()
	for _, s := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		signals <- s
		select {
		case <-finished:
			assert.Fail("signalWait should not have finished")
		default:
			// passing
		}
	}

	close(signals)
	select {
	case actual := <-finished:
		assert.Nil(actual)
	case <-time.After(10 * time.Second):
		assert.Fail("signalWait did not complete within the timeout")
	}
}

func TestSignalWait(t *testing.T) {
	t.Run("Basic", testSignalWaitBasic)
	t.Run("WaitForever", testSignalWaitForever)
}
