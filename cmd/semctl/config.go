// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/xmidt-org/sysvsem/logging"
	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/sysv"
	"github.com/xmidt-org/sysvsem/xmetrics"
	"github.com/xmidt-org/sysvsem/xviper"
	"go.uber.org/zap"
)

const (
	DefaultInterval = 5 * time.Second
)

// Config is the complete semctl configuration.  Files and the environment may set any of it,
// for example SEMCTL_SEMAPHORE_KEY or a "semaphore" section in semctl.yaml.
type Config struct {
	Semaphore semaphore.Config `mapstructure:"semaphore"`
	Log       logging.Options  `mapstructure:"log"`
	Metrics   xmetrics.Options `mapstructure:"metrics"`

	Format         string        `mapstructure:"format"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Interval       time.Duration `mapstructure:"interval"`
	MetricsAddress string        `mapstructure:"metrics-addr"`
	DeleteOnExit   bool          `mapstructure:"delete-on-exit"`
	Ftok           string        `mapstructure:"ftok"`
	ProjectID      int           `mapstructure:"project-id"`
}

// overrides maps the flags that land in nested sections onto their keys.  Only flags given on the
// command line are applied, so that files and the environment are not masked by flag defaults.
var overrides = map[string]string{
	"key":           "semaphore.key",
	"perm":          "semaphore.perm",
	"initial":       "semaphore.initial",
	"capacity":      "semaphore.capacity",
	"mutex":         "semaphore.mutex",
	"poll-interval": "semaphore.pollInterval",
	"log-level":     "log.level",
	"log-file":      "log.file",
	"log-json":      "log.json",
}

var defaults = xviper.Defaults{
	"semaphore.flags":        semaphore.Attach.String(),
	"semaphore.perm":         "0666",
	"semaphore.capacity":     semaphore.MaxValue,
	"semaphore.mutex":        false,
	"semaphore.pollInterval": semaphore.DefaultPollInterval,
}

// overrideFlags folds --create and --exclusive into the single semaphore.flags setting
func overrideFlags(fs *pflag.FlagSet) xviper.Option {
	return func(v *viper.Viper) error {
		var (
			create, _    = fs.GetBool("create")
			exclusive, _ = fs.GetBool("exclusive")
		)

		if fs.Changed("create") || fs.Changed("exclusive") {
			var f semaphore.Flags
			if create {
				f |= semaphore.Create
			}

			if exclusive {
				f |= semaphore.Exclusive
			}

			v.Set("semaphore.flags", f.String())
		}

		return nil
	}
}

func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v, err := xviper.New(
		xviper.StdOptions(applicationName, fs),
		xviper.BindEnv("semaphore.key", "semaphore.initial", "log.file"),
	)

	if err != nil {
		return nil, err
	}

	xviper.ApplyDefaults(v, defaults)
	xviper.ApplyDefaults(v, logging.Defaults())
	if err := xviper.ReadInConfig(v); err != nil {
		return nil, err
	}

	if _, err := xviper.Configure(v, xviper.OverrideChanged(fs, overrides), overrideFlags(fs)); err != nil {
		return nil, err
	}

	c := new(Config)
	if err := xviper.UnmarshalSeveral(v, semaphore.DecodeHook(), c); err != nil {
		return nil, err
	}

	switch c.Format {
	case formatText, formatJSON, formatMsgpack:
	default:
		return nil, fmt.Errorf("unsupported format: %s", c.Format)
	}

	if len(c.Ftok) > 0 {
		if c.Semaphore.Key, err = sysv.Ftok(c.Ftok, byte(c.ProjectID)); err != nil {
			return nil, err
		}
	}

	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}

	return c, nil
}

// newLogger sends logs to the process's own stderr unless a file is configured
func newLogger(c *Config, env environment) *zap.Logger {
	o := c.Log
	switch o.File {
	case "", logging.StderrFile:
		o.Output = env.stderr
	case logging.StdoutFile:
		o.Output = env.stdout
	}

	return logging.New(&o)
}
