// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
)

type mockUnmarshaler struct {
	mock.Mock
}

func (m *mockUnmarshaler) Unmarshal(v interface{}, o ...viper.DecoderConfigOption) error {
	return m.Called(v, len(o)).Error(0)
}

type mockDefaulter struct {
	mock.Mock
}

func (m *mockDefaulter) SetDefault(key string, value interface{}) {
	m.Called(key, value)
}
