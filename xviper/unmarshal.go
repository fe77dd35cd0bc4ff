// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Unmarshaler is the subset of Viper behavior used to decode configuration into structs.
type Unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// UnmarshalSeveral decodes the same configuration into each of v in turn, stopping at the first error.
// The optional hook replaces viper's default decode hook, and should usually be built with DecodeHook.
func UnmarshalSeveral(u Unmarshaler, hook mapstructure.DecodeHookFunc, v ...interface{}) error {
	var o []viper.DecoderConfigOption
	if hook != nil {
		o = append(o, viper.DecodeHook(hook))
	}

	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = u.Unmarshal(v[i], o...)
	}

	return err
}

// DecodeHook composes the given hooks with viper's default duration and comma-separated slice hooks.
func DecodeHook(hooks ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		append(
			hooks,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)...,
	)
}

type defaulter interface {
	SetDefault(string, interface{})
}

type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}
