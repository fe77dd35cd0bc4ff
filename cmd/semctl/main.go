// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/pflag"
	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/sysv"
	"go.uber.org/zap"
)

const (
	applicationName = "semctl"

	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// environment is everything semctl needs from the outside world
type environment struct {
	kernel  semaphore.Kernel
	stdout  io.Writer
	stderr  io.Writer
	signals <-chan os.Signal
}

func newFlagSet(output io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringP("file", "f", "", "the fully-qualified path of the configuration file")
	fs.StringP("key", "k", "", "the semaphore key, in decimal, hex (0x), or octal")
	fs.String("ftok", "", "derive the key from this existing path instead of --key")
	fs.Int("project-id", 1, "the project id used with --ftok")
	fs.Bool("create", false, "create the semaphore if it does not exist")
	fs.Bool("exclusive", false, "with --create, fail if the semaphore already exists")
	fs.String("perm", "0666", "the permission mask of a created semaphore")
	fs.Int("initial", 1, "the initial value of a created semaphore")
	fs.Int("capacity", semaphore.MaxValue, "the capacity of a created semaphore")
	fs.Bool("mutex", false, "treat the semaphore as a binary mutex")
	fs.Duration("poll-interval", semaphore.DefaultPollInterval, "the longest single kernel wait while acquiring")
	fs.Duration("timeout", 0, "give up acquiring after this long; zero waits until a signal arrives")
	fs.String("format", formatText, "the status output format: text, json, or msgpack")
	fs.Duration("interval", DefaultInterval, "the time between status reports for watch")
	fs.String("metrics-addr", "", "serve prometheus metrics on this address for hold and watch")
	fs.Bool("delete-on-exit", false, "with hold, delete the semaphore instead of releasing it")
	fs.String("log-level", "info", "the log level: error, warn, info, or debug")
	fs.String("log-file", "", "the log file, or stdout or stderr")
	fs.Bool("log-json", false, "log in JSON")

	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags] <command> [arguments]\n\nCommands:\n", applicationName)

		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}

		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(output, "  %-10s %s\n", name, commands[name].usage)
		}

		fmt.Fprintf(output, "\nFlags:\n%s", fs.FlagUsages())
	}

	return fs
}

func semctl(arguments []string, env environment) int {
	fs := newFlagSet(env.stderr)
	if err := fs.Parse(arguments); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		return exitUsage
	}

	c, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(env.stderr, "Unknown command: %s\n", args[0])
		fs.Usage()
		return exitUsage
	}

	config, err := loadConfig(fs)
	if err != nil {
		fmt.Fprintf(env.stderr, "Unable to load configuration: %s\n", err)
		return exitUsage
	}

	logger := newLogger(config, env)
	defer logger.Sync() // nolint: errcheck

	logger.Debug("configuration loaded",
		zap.String("command", args[0]),
		zap.Stringer("key", config.Semaphore.Key),
		zap.Stringer("flags", config.Semaphore.Flags),
	)

	r := &runner{
		config: config,
		env:    env,
		logger: logger.With(zap.String("command", args[0])),
	}

	return c.run(r, args[1:])
}

func main() {
	signals := make(chan os.Signal, 10)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	os.Exit(semctl(os.Args[1:], environment{
		kernel:  sysv.New(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		signals: signals,
	}))
}
