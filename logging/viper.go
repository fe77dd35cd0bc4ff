// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/spf13/viper"
	"github.com/xmidt-org/sysvsem/xviper"
)

const (
	// LoggingKey is the Viper subkey under which logging should be stored.
	// FromViper *does not* assume this key.
	LoggingKey = "log"

	// DefaultLevel is the level applied by Defaults.  Options without a level log only errors.
	DefaultLevel = "info"
)

// Defaults returns the logging defaults for a Viper instance that keeps logging under LoggingKey.
func Defaults() xviper.Defaults {
	return xviper.Defaults{
		LoggingKey + ".level": DefaultLevel,
		LoggingKey + ".json":  false,
	}
}

// Sub returns the standard child Viper, using LoggingKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(LoggingKey)
	}

	return nil
}

// FromViper produces an Options from a (possibly nil) Viper instance, with the same decode hooks
// used for the rest of the configuration.  Callers should use FromViper(Sub(v)) if the standard
// subkey is desired.
func FromViper(v *viper.Viper) (*Options, error) {
	o := new(Options)
	if v != nil {
		if err := xviper.UnmarshalSeveral(v, xviper.DecodeHook(), o); err != nil {
			return nil, err
		}
	}

	return o, nil
}
