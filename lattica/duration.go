// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Duration is time.Duration but looks like "12s" in JSON/YAML, rather
// than a number of nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if data[0] == '"' {
		return d.Set(string(data[1 : len(data)-1]))
	}
	if data[0] == '0' && len(data) == 1 {
		*d = Duration(0)
		return nil
	}
	return fmt.Errorf("duration must be given as a string like \"600s\" or \"1h30m\", not %s", data)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// String returns a format similar to (time.Duration)String() but with
// "0s" instead of e.g. "0" and no fractional units.
func (d Duration) String() string {
	s := time.Duration(d).String()
	s = strings.Replace(s, "m0s", "m", 1)
	s = strings.Replace(s, "h0m", "h", 1)
	return s
}

// Duration returns a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Set implements the flag.Value interface and sets the duration from
// a string like "1h2m3s".
func (d *Duration) Set(s string) error {
	dur, err := time.ParseDuration(s)
	*d = Duration(dur)
	return err
}
