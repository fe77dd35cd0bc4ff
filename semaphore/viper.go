// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/xmidt-org/sysvsem/xviper"
)

const (
	// ConfigKey is the Viper subkey under which semaphore configuration should be stored.
	// FromViper *does not* assume this key.
	ConfigKey = "semaphore"
)

// Config is the externally configurable description of a semaphore.
type Config struct {
	// Key is the rendezvous key.  Decimal, hex (0x), and octal forms are accepted.
	Key Key `json:"key"`

	// Flags is the open mode, e.g. "create" or "create|exclusive".  The default attaches.
	Flags Flags `json:"flags"`

	// Perm is the permission mask for a created semaphore, e.g. "0660".  Zero selects DefaultPerm.
	Perm os.FileMode `json:"perm"`

	// Initial is the value of a created semaphore.  Nil selects 1.
	Initial *int `json:"initial"`

	// Capacity is the ceiling of a created semaphore.  Zero selects MaxValue.
	Capacity int `json:"capacity"`

	// Mutex indicates the semaphore is binary.  Initial and Capacity are ignored for mutexes.
	Mutex bool `json:"mutex"`

	// PollInterval bounds each kernel wait of a cancellable acquire.
	PollInterval time.Duration `json:"pollInterval"`
}

// Options converts this configuration into options for Open or OpenMutex.
func (c *Config) Options() []Option {
	var o []Option
	if c == nil {
		return o
	}

	if c.Perm != 0 {
		o = append(o, WithPerm(c.Perm))
	}

	if c.Initial != nil {
		o = append(o, WithInitial(*c.Initial))
	}

	if c.Capacity != 0 {
		o = append(o, WithCapacity(c.Capacity))
	}

	if c.PollInterval > 0 {
		o = append(o, WithPollInterval(c.PollInterval))
	}

	return o
}

// Open opens the configured semaphore.  Extra options are applied after the configured ones.
// When Mutex is set, the semaphore is opened with OpenBinary.
func (c *Config) Open(k Kernel, extra ...Option) (*Semaphore, error) {
	if c.Mutex {
		return OpenBinary(k, c.Key, c.Flags, append(c.Options(), extra...)...)
	}

	return Open(k, c.Key, c.Flags, append(c.Options(), extra...)...)
}

// OpenMutex opens the configured semaphore as a Mutex.
func (c *Config) OpenMutex(k Kernel, extra ...Option) (*Mutex, error) {
	return OpenMutex(k, c.Key, c.Flags, append(c.Options(), extra...)...)
}

// Sub returns the standard child Viper, using ConfigKey, for this package.
// If passed nil, this function returns nil.
func Sub(v *viper.Viper) *viper.Viper {
	if v != nil {
		return v.Sub(ConfigKey)
	}

	return nil
}

// FromViper produces a Config from a (possibly nil) Viper instance.
// Callers should use FromViper(Sub(v)) if the standard subkey is desired.
func FromViper(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if v != nil {
		if err := v.Unmarshal(c, viper.DecodeHook(DecodeHook())); err != nil {
			return nil, err
		}
	}

	return c, nil
}

var (
	keyType   = reflect.TypeOf(Key(0))
	flagsType = reflect.TypeOf(Flags(0))
	permType  = reflect.TypeOf(os.FileMode(0))
)

// DecodeHook returns the mapstructure hooks needed to decode a Config, composed with viper's
// usual duration and slice hooks.
func DecodeHook() mapstructure.DecodeHookFunc {
	return xviper.DecodeHook(decodeKey, decodeFlags, decodePerm)
}

func decodeKey(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != keyType || from == keyType {
		return data, nil
	}

	if s, ok := data.(string); ok {
		return ParseKey(s)
	}

	n, err := cast.ToInt64E(data)
	if err != nil {
		return nil, fmt.Errorf("invalid semaphore key %v: %w", data, err)
	}

	return keyFromInt64(n)
}

func decodeFlags(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != flagsType || from == flagsType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return ParseFlags(v)

	case []string:
		return ParseFlags(strings.Join(v, "|"))

	case []interface{}:
		return ParseFlags(strings.Join(cast.ToStringSlice(v), "|"))

	default:
		n, err := cast.ToUint32E(v)
		if err != nil {
			return nil, fmt.Errorf("invalid semaphore flags %v: %w", data, err)
		}

		return Flags(n), nil
	}
}

func decodePerm(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != permType || from == permType {
		return data, nil
	}

	if s, ok := data.(string); ok {
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "0o"), 8, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid permission mask %q: %w", s, err)
		}

		return os.FileMode(n).Perm(), nil
	}

	n, err := cast.ToUint32E(data)
	if err != nil {
		return nil, fmt.Errorf("invalid permission mask %v: %w", data, err)
	}

	return os.FileMode(n).Perm(), nil
}
