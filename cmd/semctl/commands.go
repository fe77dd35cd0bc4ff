// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/sysvsem/logging"
	"github.com/xmidt-org/sysvsem/semaphore"
	"github.com/xmidt-org/sysvsem/sysv"
	"go.uber.org/zap"
)

type command struct {
	usage string
	run   func(*runner, []string) int
}

var commands = map[string]command{
	"create":  {"create the semaphore, printing its id", create},
	"acquire": {"[n] acquire n units, blocking until available", acquire},
	"lock":    {"acquire one unit, blocking until available", acquire},
	"trylock": {"acquire one unit only if available, exiting 1 when busy", trylock},
	"release": {"[n] release n units", release},
	"unlock":  {"release one unit", release},
	"status":  {"print the current state of the semaphore", printStatus},
	"delete":  {"remove the semaphore for every process", remove},
	"hold":    {"[n] acquire n units and keep them until SIGINT or SIGTERM", hold},
	"watch":   {"[count] report the state of the semaphore periodically", watch},
}

// runner carries the state shared by every command
type runner struct {
	config *Config
	env    environment
	logger *zap.Logger
}

// open attaches to, or with --create creates, the configured semaphore.  With --mutex, an attached
// object must be binary.
func (r *runner) open(flags semaphore.Flags) (*semaphore.Semaphore, error) {
	c := r.config.Semaphore
	c.Flags |= flags
	return c.Open(r.env.kernel, semaphore.WithLogger(r.logger))
}

// context produces the context for a blocking acquire.  It carries the command logger and ends
// early with --timeout or with SIGINT or SIGTERM.  Other signals are ignored.  The returned
// function cancels the context and returns the signal, if any, that ended it.
func (r *runner) context() (context.Context, func() os.Signal) {
	var (
		ctx, cancel = context.WithCancel(logging.WithLogger(context.Background(), r.logger))
		received    = make(chan os.Signal, 1)
	)

	if r.config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, r.config.Timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}

	go func() {
		defer close(received)
		for {
			select {
			case s, ok := <-r.env.signals:
				if !ok {
					return
				}

				if s == syscall.SIGINT || s == syscall.SIGTERM {
					received <- s
					cancel()
					return
				}

				logging.GetLogger(ctx).Info("ignoring signal", zap.Stringer("signal", s))

			case <-ctx.Done():
				return
			}
		}
	}()

	return ctx, func() os.Signal {
		cancel()
		return <-received
	}
}

// acquire takes n units.  A single unit honors --timeout and signals.  Several units are taken in one
// kernel operation, which can only be cut short by removing the semaphore.
func (r *runner) acquire(s semaphore.Interface, n int) (os.Signal, error) {
	if n > 1 {
		return nil, s.AcquireN(n)
	}

	ctx, stop := r.context()
	err := s.AcquireCtx(ctx)
	sig := stop()
	if sig != nil {
		r.logger.Info("signal received while acquiring", zap.Stringer("signal", sig))
	}

	return sig, err
}

// count parses the optional unit count argument
func (r *runner) count(args []string) (int, bool) {
	if len(args) == 0 {
		return 1, true
	}

	n, err := strconv.Atoi(args[0])
	if len(args) > 1 || err != nil || n < 1 {
		fmt.Fprintf(r.env.stderr, "Invalid count: %v\n", args)
		return 0, false
	}

	if r.config.Semaphore.Mutex && n > 1 {
		fmt.Fprintln(r.env.stderr, "A mutex holds a single unit")
		return 0, false
	}

	return n, true
}

// fail reports err and chooses the exit code.  Errors caused by the invocation itself are usage errors.
func (r *runner) fail(message string, err error) int {
	r.logger.Error(message, zap.Error(err))

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(r.env.stderr, "%s: timed out after %s\n", message, r.config.Timeout)
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(r.env.stderr, "%s: interrupted\n", message)
	default:
		fmt.Fprintf(r.env.stderr, "%s: %s\n", message, err)
	}

	switch {
	case errors.Is(err, semaphore.ErrMissingKey),
		errors.Is(err, semaphore.ErrInvalidCount),
		errors.Is(err, semaphore.ErrInvalidFlags),
		errors.Is(err, sysv.ErrUnsupported),
		errors.Is(err, syscall.EACCES):
		return exitUsage

	default:
		return exitFailure
	}
}

func create(r *runner, args []string) int {
	s, err := r.open(semaphore.Create)
	if err != nil {
		return r.fail("Unable to create semaphore", err)
	}

	if !s.Created() {
		r.logger.Info("semaphore already existed", zap.Stringer("key", s.Key()))
	}

	fmt.Fprintln(r.env.stdout, s.ID())
	return exitOK
}

func acquire(r *runner, args []string) int {
	n, ok := r.count(args)
	if !ok {
		return exitUsage
	}

	if n > 1 && r.config.Timeout > 0 {
		fmt.Fprintln(r.env.stderr, "--timeout applies only to a single unit")
		return exitUsage
	}

	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	if _, err := r.acquire(s, n); err != nil {
		return r.fail("Unable to acquire semaphore", err)
	}

	r.logger.Info("acquired", zap.Int("units", n))
	return exitOK
}

func trylock(r *runner, args []string) int {
	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	ok, err := s.TryAcquire()
	if err != nil {
		return r.fail("Unable to acquire semaphore", err)
	}

	if !ok {
		fmt.Fprintln(r.env.stderr, "busy")
		return exitFailure
	}

	r.logger.Info("acquired", zap.Int("units", 1))
	return exitOK
}

func release(r *runner, args []string) int {
	n, ok := r.count(args)
	if !ok {
		return exitUsage
	}

	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	if err := s.ReleaseN(n); err != nil {
		return r.fail("Unable to release semaphore", err)
	}

	r.logger.Info("released", zap.Int("units", n))
	return exitOK
}

func printStatus(r *runner, args []string) int {
	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	st, err := newStatus(s, r.config.Semaphore.Mutex)
	if err == nil {
		err = writeStatus(r.env.stdout, r.config.Format, st)
	}

	if err != nil {
		return r.fail("Unable to report status", err)
	}

	return exitOK
}

func remove(r *runner, args []string) int {
	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	if err := s.Destroy(); err != nil {
		return r.fail("Unable to delete semaphore", err)
	}

	return exitOK
}

// hold keeps units until told to stop, so that other processes can observe contention.  The units
// are released afterwards, or the semaphore is deleted with --delete-on-exit.
func hold(r *runner, args []string) int {
	n, ok := r.count(args)
	if !ok {
		return exitUsage
	}

	r.logger = r.logger.With(zap.Stringer("session", ksuid.New()))
	s, err := r.open(0)
	if err != nil {
		return r.fail("Unable to open semaphore", err)
	}

	registry, err := newRegistry(r.config)
	if err != nil {
		return r.fail("Unable to create metrics", err)
	}

	is := semaphore.Instrument(s, semaphore.NewMeasures(registry).InstrumentOptions()...)
	if len(r.config.MetricsAddress) > 0 {
		_, shutdown, err := serveMetrics(r.config.MetricsAddress, registry, r.logger)
		if err != nil {
			return r.fail("Unable to serve metrics", err)
		}

		defer shutdown()
	}

	sig, err := r.acquire(is, n)
	if err != nil {
		return r.fail("Unable to acquire semaphore", err)
	}

	if sig == nil {
		r.logger.Info("holding semaphore until SIGINT or SIGTERM", zap.Int("units", n))
		sig = signalWait(r.logger, r.env.signals, syscall.SIGINT, syscall.SIGTERM)
	}

	r.logger.Info("stopping", zap.Any("signal", sig))

	if r.config.DeleteOnExit {
		if err := s.Destroy(); err != nil {
			return r.fail("Unable to delete semaphore", err)
		}

		return exitOK
	}

	if err := is.ReleaseN(n); err != nil {
		return r.fail("Unable to release semaphore", err)
	}

	r.logger.Info("released", zap.Int("units", n))
	return exitOK
}
