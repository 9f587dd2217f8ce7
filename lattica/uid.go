// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UID is the unique identifier of a Lattica resource: a UUID string
// on the wire. The zero UID means "not assigned yet" and is omitted
// when dumping documents for create calls.
type UID struct {
	uuid.UUID
}

// ParseUID parses a UUID string.
func ParseUID(s string) (UID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UID{}, fmt.Errorf("invalid uid %q: %s", s, err)
	}
	return UID{UUID: u}, nil
}

// MustUID is ParseUID for fixtures and tests.
func MustUID(s string) UID {
	u, err := ParseUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// NewUID returns a random (v4) UID.
func NewUID() UID {
	return UID{UUID: uuid.New()}
}

// IsZero reports whether the UID is unassigned.
func (u UID) IsZero() bool {
	return u.UUID == uuid.UUID{}
}

// UnmarshalJSON accepts a UUID string or null.
func (u *UID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*u = UID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("uid must be a UUID string: %s", data)
	}
	parsed, err := ParseUID(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// MarshalJSON emits a UUID string, or null for the zero UID.
func (u UID) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(u.String())
}
