// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ugorji/go/codec"
	"github.com/xmidt-org/sysvsem/semaphore"
)

const (
	formatText    = "text"
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

var handles = map[string]codec.Handle{
	formatJSON: &codec.JsonHandle{
		BasicHandle: codec.BasicHandle{
			TypeInfos: codec.NewTypeInfos([]string{"json"}),
		},
	},
	formatMsgpack: &codec.MsgpackHandle{
		BasicHandle: codec.BasicHandle{
			TypeInfos: codec.NewTypeInfos([]string{"codec"}),
		},
	},
}

// status is what the status and watch commands report
type status struct {
	Key      int32  `json:"key" codec:"key"`
	ID       int    `json:"id" codec:"id"`
	Value    int    `json:"value" codec:"value"`
	Capacity int    `json:"capacity" codec:"capacity"`
	Waiting  int    `json:"waiting" codec:"waiting"`
	LastPID  int    `json:"lastPID" codec:"lastPID"`
	State    string `json:"state,omitempty" codec:"state,omitempty"`
}

func newStatus(s *semaphore.Semaphore, mutex bool) (*status, error) {
	st, err := s.Stat()
	if err != nil {
		return nil, err
	}

	result := &status{
		Key:      int32(s.Key()),
		ID:       int(s.ID()),
		Value:    st.Value,
		Capacity: st.Capacity,
		Waiting:  st.Waiting,
		LastPID:  st.LastPID,
	}

	if mutex {
		result.State = "unlocked"
		if st.Value == 0 {
			result.State = "locked"
		}
	}

	return result, nil
}

func (st *status) String() string {
	text := fmt.Sprintf(
		"key=%d id=%d value=%d capacity=%d waiting=%d lastPID=%d",
		st.Key, st.ID, st.Value, st.Capacity, st.Waiting, st.LastPID,
	)

	if len(st.State) > 0 {
		text += " state=" + st.State
	}

	return text
}

// writeStatus renders a status in the given format.  Each status is followed by a newline, except
// in msgpack where records are self-delimiting.
func writeStatus(w io.Writer, format string, st *status) error {
	if format == formatText {
		_, err := fmt.Fprintln(w, st)
		return err
	}

	h, ok := handles[format]
	if !ok {
		return fmt.Errorf("unsupported format: %s", format)
	}

	if err := codec.NewEncoder(w, h).Encode(st); err != nil {
		return err
	}

	if format == formatJSON {
		_, err := io.WriteString(w, "\n")
		return err
	}

	return nil
}
