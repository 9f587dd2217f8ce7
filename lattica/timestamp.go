// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a calendar time that crosses the wire as milliseconds
// since the Unix epoch, the representation used by all Lattica
// create/update time fields.
type Timestamp struct {
	time.Time
}

// UnixMilli returns a Timestamp for the given epoch-millisecond
// value.
func UnixMilli(ms int64) Timestamp {
	return Timestamp{Time: time.UnixMilli(ms).UTC()}
}

// UnmarshalJSON accepts an integer (or integral float) number of
// epoch milliseconds.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("timestamp must be epoch milliseconds: %s", data)
	}
	*t = UnixMilli(int64(ms))
	return nil
}

// MarshalJSON emits epoch milliseconds.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UnixMilli())
}
