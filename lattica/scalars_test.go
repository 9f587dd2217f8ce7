// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"
	"time"

	check "gopkg.in/check.v1"
)

var _ = check.Suite(&scalarsSuite{})

type scalarsSuite struct{}

func (s *scalarsSuite) TestUIDJSON(c *check.C) {
	var x struct {
		ID UID `json:"id"`
	}
	err := json.Unmarshal([]byte(`{"id":"11111111-1111-4111-8111-111111111111"}`), &x)
	c.Assert(err, check.IsNil)
	c.Check(x.ID.String(), check.Equals, "11111111-1111-4111-8111-111111111111")
	c.Check(x.ID.IsZero(), check.Equals, false)

	buf, err := json.Marshal(x)
	c.Assert(err, check.IsNil)
	c.Check(string(buf), check.Equals, `{"id":"11111111-1111-4111-8111-111111111111"}`)
}

func (s *scalarsSuite) TestUIDNull(c *check.C) {
	var u UID
	c.Assert(json.Unmarshal([]byte(`null`), &u), check.IsNil)
	c.Check(u.IsZero(), check.Equals, true)

	buf, err := json.Marshal(UID{})
	c.Assert(err, check.IsNil)
	c.Check(string(buf), check.Equals, `null`)
}

func (s *scalarsSuite) TestUIDErrors(c *check.C) {
	var u UID
	c.Check(json.Unmarshal([]byte(`"not-a-uuid"`), &u), check.ErrorMatches, `invalid uid "not-a-uuid".*`)
	c.Check(json.Unmarshal([]byte(`42`), &u), check.ErrorMatches, `uid must be a UUID string: 42`)

	_, err := ParseUID("xyz")
	c.Check(err, check.NotNil)
	c.Check(func() { MustUID("xyz") }, check.PanicMatches, `invalid uid "xyz".*`)
}

func (s *scalarsSuite) TestNewUIDUnique(c *check.C) {
	a, b := NewUID(), NewUID()
	c.Check(a.IsZero(), check.Equals, false)
	c.Check(a, check.Not(check.Equals), b)
}

func (s *scalarsSuite) TestTimestampJSON(c *check.C) {
	var ts Timestamp
	c.Assert(json.Unmarshal([]byte(`1700000000000`), &ts), check.IsNil)
	c.Check(ts.Time, check.Equals, time.UnixMilli(1700000000000).UTC())

	// Some backends emit exponent notation for large numbers.
	c.Assert(json.Unmarshal([]byte(`1.7e12`), &ts), check.IsNil)
	c.Check(ts.UnixMilli(), check.Equals, int64(1700000000000))

	buf, err := json.Marshal(UnixMilli(1700000000000))
	c.Assert(err, check.IsNil)
	c.Check(string(buf), check.Equals, `1700000000000`)
}

func (s *scalarsSuite) TestTimestampNull(c *check.C) {
	var ts Timestamp
	c.Assert(json.Unmarshal([]byte(`null`), &ts), check.IsNil)
	c.Check(ts.IsZero(), check.Equals, true)

	buf, err := json.Marshal(Timestamp{})
	c.Assert(err, check.IsNil)
	c.Check(string(buf), check.Equals, `null`)
}

func (s *scalarsSuite) TestTimestampError(c *check.C) {
	var ts Timestamp
	c.Check(json.Unmarshal([]byte(`"2023-01-01"`), &ts), check.ErrorMatches, `timestamp must be epoch milliseconds: .*`)
}

func (s *scalarsSuite) TestDurationJSON(c *check.C) {
	var d Duration
	c.Assert(json.Unmarshal([]byte(`"1h30m"`), &d), check.IsNil)
	c.Check(d.Duration(), check.Equals, 90*time.Minute)
	c.Check(d.String(), check.Equals, "1h30m")

	c.Assert(json.Unmarshal([]byte(`0`), &d), check.IsNil)
	c.Check(d.Duration(), check.Equals, time.Duration(0))

	c.Check(json.Unmarshal([]byte(`600`), &d), check.ErrorMatches, `duration must be given as a string.*`)

	buf, err := json.Marshal(Duration(150 * time.Second))
	c.Assert(err, check.IsNil)
	c.Check(string(buf), check.Equals, `"2m30s"`)
}
