// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"os"
	"time"

	"github.com/stretchr/testify/mock"
)

type mockKernel struct {
	mock.Mock
}

func (m *mockKernel) Open(key Key, flags Flags, perm os.FileMode, initial, capacity int) (ID, bool, error) {
	arguments := m.Called(key, flags, perm, initial, capacity)
	return arguments.Get(0).(ID), arguments.Bool(1), arguments.Error(2)
}

func (m *mockKernel) Acquire(id ID, n int, wait time.Duration) error {
	return m.Called(id, n, wait).Error(0)
}

func (m *mockKernel) Release(id ID, n int) error {
	return m.Called(id, n).Error(0)
}

func (m *mockKernel) Stat(id ID) (Stat, error) {
	arguments := m.Called(id)
	return arguments.Get(0).(Stat), arguments.Error(1)
}

func (m *mockKernel) Remove(id ID) error {
	return m.Called(id).Error(0)
}

type mockInterface struct {
	mock.Mock
}

func (m *mockInterface) Acquire() error {
	return m.Called().Error(0)
}

func (m *mockInterface) AcquireN(n int) error {
	return m.Called(n).Error(0)
}

func (m *mockInterface) AcquireWait(timeout time.Duration) error {
	return m.Called(timeout).Error(0)
}

func (m *mockInterface) AcquireCtx(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockInterface) TryAcquire() (bool, error) {
	arguments := m.Called()
	return arguments.Bool(0), arguments.Error(1)
}

func (m *mockInterface) Release() error {
	return m.Called().Error(0)
}

func (m *mockInterface) ReleaseN(n int) error {
	return m.Called(n).Error(0)
}

func (m *mockInterface) Value() (int, error) {
	arguments := m.Called()
	return arguments.Int(0), arguments.Error(1)
}

func (m *mockInterface) Waiting() (int, error) {
	arguments := m.Called()
	return arguments.Int(0), arguments.Error(1)
}

func (m *mockInterface) Destroy() error {
	return m.Called().Error(0)
}
