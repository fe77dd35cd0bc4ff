// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

const (
	// MaxValue is the largest value or capacity a semaphore may hold.  It matches SEMVMX.
	MaxValue = 32767

	// DefaultPerm is the permission mask used for newly created semaphores.
	DefaultPerm os.FileMode = 0666
)

// Key is the process-external identifier of a semaphore.  The zero Key is never valid.
type Key int32

func (k Key) String() string {
	return strconv.FormatInt(int64(k), 10)
}

// ParseKey parses decimal, hexadecimal (0x), or octal (0 or 0o) keys.  Values between
// math.MaxInt32 and math.MaxUint32 are accepted and keep their bit pattern, as with ftok keys.
func ParseKey(v string) (Key, error) {
	v = strings.TrimSpace(v)
	if len(v) == 0 {
		return 0, ErrMissingKey
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, fmt.Errorf("invalid semaphore key %q: %w", v, err)
	}

	return keyFromInt64(n)
}

func keyFromInt64(n int64) (Key, error) {
	switch {
	case n == 0:
		return 0, ErrMissingKey
	case n < math.MinInt32 || n > math.MaxUint32:
		return 0, fmt.Errorf("semaphore key %d is out of range", n)
	case n > math.MaxInt32:
		return Key(int32(uint32(n))), nil
	default:
		return Key(n), nil
	}
}

// Flags controls how Open treats a key that does or does not already have an object.
type Flags uint32

const (
	// Create creates the semaphore when no object exists for the key.
	Create Flags = 1 << iota

	// Exclusive, together with Create, fails with ErrAlreadyExists when the object exists.
	// Exclusive without Create is rejected with ErrInvalidFlags.
	Exclusive

	// Attach is the zero Flags: attach to an existing object, or fail with ErrNotFound.
	Attach Flags = 0
)

// Has tests whether every bit of o is set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Valid reports whether f is a combination Open accepts.
func (f Flags) Valid() bool {
	return f&^(Create|Exclusive) == 0 && (!f.Has(Exclusive) || f.Has(Create))
}

func (f Flags) String() string {
	var names []string
	if f.Has(Create) {
		names = append(names, "create")
	}

	if f.Has(Exclusive) {
		names = append(names, "exclusive")
	}

	if len(names) == 0 {
		return "attach"
	}

	return strings.Join(names, "|")
}

// ParseFlags parses the output of Flags.String.  Names may be separated by '|', ',', or
// whitespace, and the System V spellings IPC_CREAT and IPC_EXCL are accepted.
func ParseFlags(v string) (Flags, error) {
	var f Flags
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == '|' || r == ',' || r == ' ' || r == '\t'
	})

	for _, name := range fields {
		switch strings.ToLower(name) {
		case "create", "creat", "ipc_creat":
			f |= Create
		case "exclusive", "excl", "ipc_excl":
			f |= Exclusive
		case "attach", "none":
		default:
			return 0, fmt.Errorf("unrecognized semaphore flag %q", name)
		}
	}

	return f, nil
}
