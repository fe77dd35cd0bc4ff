// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore_test

import (
	"context"
	"fmt"

	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/semaphore/semaphoretest"
	"go.uber.org/zap"
)

func ExampleOpenMutex() {
	// production code passes sysv.NewKernel() instead
	k := semaphoretest.NewKernel()

	m, err := semaphore.OpenMutex(k, 1234, semaphore.Create, semaphore.WithLogger(zap.NewNop()))
	if err != nil {
		fmt.Println(err)
		return
	}

	locked, _ := m.Locked()
	fmt.Println("locked:", locked)

	m.Lock()
	locked, _ = m.Locked()
	fmt.Println("locked:", locked)

	m.Release()
	fmt.Println("second release:", m.Release())

	m.Delete()
	_, err = m.Locked()
	fmt.Println("after delete:", err)

	// Output:
	// locked: false
	// locked: true
	// second release: the release would exceed the semaphore capacity
	// after delete: the semaphore does not exist
}

func ExampleDo() {
	k := semaphoretest.NewKernel()
	s, err := semaphore.Open(k, 42, semaphore.Create,
		semaphore.WithInitial(2),
		semaphore.WithCapacity(2),
		semaphore.WithLogger(zap.NewNop()),
	)

	if err != nil {
		fmt.Println(err)
		return
	}

	semaphore.Do(context.Background(), s, func() error {
		v, _ := s.Value()
		fmt.Println("inside:", v)
		return nil
	})

	v, _ := s.Value()
	fmt.Println("after:", v)

	// Output:
	// inside: 1
	// after: 2
}
