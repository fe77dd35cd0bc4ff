// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	testData := []struct {
		value    string
		expected Key
	}{
		{"1234", 1234},
		{" 1234 ", 1234},
		{"-7", -7},
		{"0x4d2", 1234},
		{"0X4D2", 1234},
		{"02322", 1234},
		{"0xffffffff", -1},
		{"0x80000000", Key(-2147483648)},
	}

	for _, record := range testData {
		t.Run(record.value, func(t *testing.T) {
			actual, err := ParseKey(record.value)
			assert.NoError(t, err)
			assert.Equal(t, record.expected, actual)
		})
	}
}

func TestParseKeyInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseKey("")
	assert.Equal(ErrMissingKey, err)

	_, err = ParseKey("0")
	assert.Equal(ErrMissingKey, err)

	_, err = ParseKey("0x100000000")
	assert.Error(err)

	_, err = ParseKey("not a key")
	assert.Error(err)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "1234", Key(1234).String())
	assert.Equal(t, "-1", Key(-1).String())
}

func TestFlagsString(t *testing.T) {
	testData := []struct {
		flags    Flags
		expected string
	}{
		{Attach, "attach"},
		{Create, "create"},
		{Exclusive, "exclusive"},
		{Create | Exclusive, "create|exclusive"},
	}

	for _, record := range testData {
		t.Run(record.expected, func(t *testing.T) {
			assert.Equal(t, record.expected, record.flags.String())

			parsed, err := ParseFlags(record.expected)
			assert.NoError(t, err)
			assert.Equal(t, record.flags, parsed)
		})
	}
}

func TestParseFlags(t *testing.T) {
	testData := []struct {
		value    string
		expected Flags
	}{
		{"", Attach},
		{"none", Attach},
		{"IPC_CREAT", Create},
		{"IPC_CREAT|IPC_EXCL", Create | Exclusive},
		{"create, exclusive", Create | Exclusive},
		{"creat excl", Create | Exclusive},
	}

	for _, record := range testData {
		t.Run(record.value, func(t *testing.T) {
			actual, err := ParseFlags(record.value)
			assert.NoError(t, err)
			assert.Equal(t, record.expected, actual)
		})
	}

	_, err := ParseFlags("create|bogus")
	assert.Error(t, err)
}

func TestFlagsHas(t *testing.T) {
	assert := assert.New(t)
	assert.True((Create | Exclusive).Has(Create))
	assert.True((Create | Exclusive).Has(Create | Exclusive))
	assert.False(Create.Has(Exclusive))
	assert.True(Attach.Has(Attach))
}

func TestFlagsValid(t *testing.T) {
	assert := assert.New(t)
	assert.True(Attach.Valid())
	assert.True(Create.Valid())
	assert.True((Create | Exclusive).Valid())
	assert.False(Exclusive.Valid())
	assert.False((Create | Flags(4)).Valid())
}
