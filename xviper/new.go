// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance.
type Option func(*viper.Viper) error

func AddConfigPaths(paths ...string) Option {
	return func(v *viper.Viper) error {
		for _, p := range paths {
			v.AddConfigPath(p)
		}

		return nil
	}
}

func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		return nil
	}
}

// SetEnvKeyReplacer maps nested keys onto environment variable names, so that "semaphore.key"
// can be set through PREFIX_SEMAPHORE_KEY.
func SetEnvKeyReplacer(oldnew ...string) Option {
	return func(v *viper.Viper) error {
		if len(oldnew)%2 != 0 {
			return errors.New("SetEnvKeyReplacer requires old/new pairs")
		}

		v.SetEnvKeyReplacer(strings.NewReplacer(oldnew...))
		return nil
	}
}

func SetConfigName(name string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigName(name)
		return nil
	}
}

func SetConfigFile(file string) Option {
	return func(v *viper.Viper) error {
		v.SetConfigFile(file)
		return nil
	}
}

func AutomaticEnv(v *viper.Viper) error {
	v.AutomaticEnv()
	return nil
}

// BindEnv registers keys that should be read from the environment even though no file, flag, or
// default mentions them.  AutomaticEnv alone only consults the environment for keys viper already knows.
func BindEnv(keys ...string) Option {
	return func(v *viper.Viper) error {
		for _, k := range keys {
			if err := v.BindEnv(k); err != nil {
				return err
			}
		}

		return nil
	}
}

func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// BindPFlag binds a single flag to a possibly nested configuration key.  A missing flag is an error.
func BindPFlag(key string, fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		f := fs.Lookup(flag)
		if f == nil {
			return fmt.Errorf("no such flag: %s", flag)
		}

		return v.BindPFlag(key, f)
	}
}

// OverrideChanged copies each flag that was explicitly set onto its configuration key, keyed by flag
// name.  Unlike BindPFlag, flags left at their defaults do not mask configuration or environment
// values, and values are decoded by the same hooks as file-based configuration.
func OverrideChanged(fs *pflag.FlagSet, keys map[string]string) Option {
	return func(v *viper.Viper) error {
		for flag, key := range keys {
			f := fs.Lookup(flag)
			if f == nil {
				return fmt.Errorf("no such flag: %s", flag)
			}

			if f.Changed {
				v.Set(key, f.Value.String())
			}
		}

		return nil
	}
}

// BindConfigFile uses the value of the given flag, when set, as the fully-qualified path of the
// configuration file.
func BindConfigFile(fs *pflag.FlagSet, flag string) Option {
	return func(v *viper.Viper) error {
		if f := fs.Lookup(flag); f != nil {
			configFile := f.Value.String()
			if len(configFile) > 0 {
				v.SetConfigFile(configFile)
			}
		}

		return nil
	}
}

// ReadInConfig reads the configuration file.  A missing file is tolerated unless one was named
// explicitly, since every setting can also come from flags or the environment.
func ReadInConfig(v *viper.Viper) error {
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}

	return err
}

// StdOptions is the standard layering for a command line tool: a configuration file named after the
// application, found in /etc/<app>, $HOME/.<app>, or the working directory, overridden by <APP>_*
// environment variables, overridden by flags.  A --file flag, if defined, names the file directly.
func StdOptions(applicationName string, fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		_, err := Configure(v,
			AddConfigPaths(
				fmt.Sprintf("/etc/%s", applicationName),
				fmt.Sprintf("$HOME/.%s", applicationName),
				".",
			),
			SetEnvPrefix(applicationName),
			SetEnvKeyReplacer(".", "_", "-", "_"),
			AutomaticEnv,
			SetConfigName(applicationName),
			BindConfigFile(fs, DefaultFileFlag),
			BindPFlags(fs),
		)

		return err
	}
}

func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
