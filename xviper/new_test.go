// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	var (
		assert   = assert.New(t)
		expected = errors.New("expected")
		called   = false
	)

	v, err := Configure(nil, func(*viper.Viper) error {
		called = true
		return nil
	})

	assert.Nil(v)
	assert.NoError(err)
	assert.False(called)

	v, err = New(func(*viper.Viper) error { return expected })
	assert.Nil(v)
	assert.Equal(expected, err)

	v, err = New(SetConfigName("test"), AddConfigPaths("/nosuch"))
	assert.NotNil(v)
	assert.NoError(err)
}

func TestSetEnvKeyReplacer(t *testing.T) {
	assert := assert.New(t)

	v, err := New(SetEnvKeyReplacer(".", "_", "-"))
	assert.Nil(v)
	assert.Error(err)

	t.Setenv("XVIPERTEST_NESTED_SOME_KEY", "value")
	v, err = New(SetEnvPrefix("xvipertest"), SetEnvKeyReplacer(".", "_", "-", "_"), AutomaticEnv)
	require.NoError(t, err)
	assert.Equal("value", v.GetString("nested.some-key"))
}

func TestBindPFlag(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	fs.Int("key", 0, "the key")
	require.NoError(fs.Parse([]string{"--key", "1234"}))

	v, err := New(BindPFlag("semaphore.key", fs, "key"))
	require.NoError(err)
	assert.Equal(1234, v.GetInt("semaphore.key"))

	v, err = New(BindPFlag("semaphore.key", fs, "nosuch"))
	assert.Nil(v)
	assert.Error(err)
}

func TestBindEnv(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	t.Setenv("BINDENVTEST_SEMAPHORE_KEY", "0x1234")
	v, err := New(SetEnvPrefix("bindenvtest"), SetEnvKeyReplacer(".", "_"), BindEnv("semaphore.key"))
	require.NoError(err)
	assert.Equal("0x1234", v.GetString("semaphore.key"))
	assert.Contains(v.AllKeys(), "semaphore.key")
	assert.Equal(map[string]interface{}{"key": "0x1234"}, v.AllSettings()["semaphore"])
}

func TestOverrideChanged(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
		keys    = map[string]string{"initial": "semaphore.initial", "perm": "semaphore.perm"}
	)

	fs.Int("initial", 0, "initial value")
	fs.String("perm", "0666", "permissions")
	require.NoError(fs.Parse([]string{"--initial", "3"}))

	v, err := New(OverrideChanged(fs, keys))
	require.NoError(err)
	assert.Equal("3", v.Get("semaphore.initial"))
	assert.False(v.IsSet("semaphore.perm"))

	v, err = New(OverrideChanged(fs, map[string]string{"nosuch": "semaphore.nosuch"}))
	assert.Nil(v)
	assert.Error(err)
}

func TestBindConfigFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	fs.String(DefaultFileFlag, "", "the config file")
	require.NoError(fs.Parse([]string{"--file", "/etc/test/test.yaml"}))

	v, err := New(BindConfigFile(fs, DefaultFileFlag), BindConfigFile(fs, "nosuch"))
	require.NoError(err)
	assert.Equal("/etc/test/test.yaml", v.ConfigFileUsed())
}

func TestReadInConfig(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		v, err := New(SetConfigName("nosuch"), AddConfigPaths(t.TempDir()))
		require.NoError(t, err)
		assert.NoError(t, ReadInConfig(v))
	})

	t.Run("Explicit", func(t *testing.T) {
		v, err := New(SetConfigFile(filepath.Join(t.TempDir(), "nosuch.yaml")))
		require.NoError(t, err)
		assert.Error(t, ReadInConfig(v))
	})

	t.Run("Found", func(t *testing.T) {
		var (
			assert  = assert.New(t)
			require = require.New(t)
			dir     = t.TempDir()
		)

		require.NoError(os.WriteFile(filepath.Join(dir, "test.yaml"), []byte("semaphore:\n  key: 1234\n"), 0600))

		v, err := New(SetConfigName("test"), AddConfigPaths(dir))
		require.NoError(err)
		require.NoError(ReadInConfig(v))
		assert.Equal(1234, v.GetInt("semaphore.key"))
	})
}

func TestStdOptions(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		dir     = t.TempDir()
		file    = filepath.Join(dir, "custom.yaml")
		fs      = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	require.NoError(os.WriteFile(file, []byte("semaphore:\n  key: 1\n  capacity: 3\nlog:\n  level: info\n"), 0600))
	fs.String(DefaultFileFlag, "", "the config file")
	fs.Bool("mutex", false, "mutex")
	require.NoError(fs.Parse([]string{"--file", file, "--mutex"}))

	t.Setenv("STDOPTIONSTEST_SEMAPHORE_KEY", "42")

	v, err := New(StdOptions("stdoptionstest", fs))
	require.NoError(err)
	require.NoError(ReadInConfig(v))

	assert.Equal(file, v.ConfigFileUsed())
	assert.Equal(42, v.GetInt("semaphore.key"))
	assert.Equal(3, v.GetInt("semaphore.capacity"))
	assert.Equal("info", v.GetString("log.level"))
	assert.True(v.GetBool("mutex"))
}
