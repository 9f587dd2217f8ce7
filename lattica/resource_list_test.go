// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"
	"errors"
	"fmt"

	"github.com/lattica-ai/lattica-go/docmap"
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&pagerSuite{})

type pagerSuite struct{}

// pageScript returns a PageFunc serving the given pages in order,
// counting fetches. Cursors are just page indexes; the last page
// returns nextAfterLast as its continuation cursor.
func pageScript(calls *int, nextAfterLast string, pages ...[]docmap.Document) PageFunc {
	return func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		*calls++
		i := 0
		if cursor != "" {
			fmt.Sscanf(cursor, "%d", &i)
		}
		if i >= len(pages) {
			return nil, "", nil
		}
		next := fmt.Sprintf("%d", i+1)
		if i == len(pages)-1 {
			next = nextAfterLast
		}
		return pages[i], next, nil
	}
}

func docs(ids ...string) []docmap.Document {
	out := make([]docmap.Document, len(ids))
	for i, id := range ids {
		out[i] = docmap.Document{"uid": id, "seq": float64(i)}
	}
	return out
}

func drain(c *check.C, p *Pager) []string {
	var ids []string
	for p.Next(context.Background()) {
		ids = append(ids, p.Item()["uid"].(string))
	}
	return ids
}

func (s *pagerSuite) TestMultiplePages(c *check.C) {
	calls := 0
	p := NewPager(pageScript(&calls, "", docs("a", "b"), docs("c", "d"), docs("e")), 2)
	c.Check(drain(c, p), check.DeepEquals, []string{"a", "b", "c", "d", "e"})
	c.Check(p.Err(), check.IsNil)
	c.Check(calls, check.Equals, 3)
}

func (s *pagerSuite) TestEmptyListing(c *check.C) {
	calls := 0
	p := NewPager(pageScript(&calls, ""), 10)
	c.Check(p.Next(context.Background()), check.Equals, false)
	c.Check(p.Err(), check.IsNil)
	c.Check(calls, check.Equals, 1)
}

func (s *pagerSuite) TestEmptyPageEndsSequence(c *check.C) {
	// Backend returns a non-empty cursor with an empty page: treat as
	// end of results rather than fetching forever.
	calls := 0
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		calls++
		if cursor == "" {
			return docs("a"), "more", nil
		}
		return nil, "evenmore", nil
	}
	p := NewPager(fetch, 10)
	c.Check(drain(c, p), check.DeepEquals, []string{"a"})
	c.Check(p.Err(), check.IsNil)
	c.Check(calls, check.Equals, 2)
}

func (s *pagerSuite) TestOverlapDedup(c *check.C) {
	// Second page re-serves "b" (record shifted between fetches); it
	// must be yielded once.
	calls := 0
	p := NewPager(pageScript(&calls, "",
		docs("a", "b"),
		[]docmap.Document{{"uid": "c"}, {"uid": "b"}, {"uid": "d"}},
	), 2)
	c.Check(drain(c, p), check.DeepEquals, []string{"a", "b", "c", "d"})
	c.Check(p.Err(), check.IsNil)
}

func (s *pagerSuite) TestCursorWrapAround(c *check.C) {
	// Cursor loops back to the first page instead of ending: the
	// repeated page is discarded and the sequence stops.
	calls := 0
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		calls++
		if cursor == "" || cursor == "wrap" {
			return docs("a", "b"), "next", nil
		}
		return docs("c"), "wrap", nil
	}
	p := NewPager(fetch, 2)
	c.Check(drain(c, p), check.DeepEquals, []string{"a", "b", "c"})
	c.Check(p.Err(), check.IsNil)
	c.Check(calls, check.Equals, 3)
}

func (s *pagerSuite) TestRepeatedFirstItemStops(c *check.C) {
	// Second page starts with an item already yielded: the whole page
	// is discarded and pagination ends.
	calls := 0
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		calls++
		if cursor == "" {
			return docs("a", "b"), "next", nil
		}
		return []docmap.Document{{"uid": "a"}, {"uid": "z"}}, "evenmore", nil
	}
	p := NewPager(fetch, 2)
	c.Check(drain(c, p), check.DeepEquals, []string{"a", "b"})
	c.Check(p.Err(), check.IsNil)
	c.Check(calls, check.Equals, 2)
}

func (s *pagerSuite) TestFetchError(c *check.C) {
	boom := errors.New("backend exploded")
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		if cursor == "" {
			return docs("a"), "next", nil
		}
		return nil, "", boom
	}
	p := NewPager(fetch, 5)
	c.Check(drain(c, p), check.DeepEquals, []string{"a"})
	c.Check(p.Err(), check.Equals, boom)
	// Next stays false after an error.
	c.Check(p.Next(context.Background()), check.Equals, false)
}

func (s *pagerSuite) TestMissingID(c *check.C) {
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		return []docmap.Document{{"name": "anonymous"}}, "", nil
	}
	p := NewPager(fetch, 5)
	c.Check(p.Next(context.Background()), check.Equals, false)
	c.Check(p.Err(), check.ErrorMatches, `list entry has neither "uid" nor "id" field`)

	// With an explicit IDKey there is no fallback, so only that key
	// is named.
	p = NewPager(fetch, 5)
	p.IDKey = "module_id"
	c.Check(p.Next(context.Background()), check.Equals, false)
	c.Check(p.Err(), check.ErrorMatches, `list entry has no "module_id" field`)
}

func (s *pagerSuite) TestIDFallback(c *check.C) {
	// Default IDKey falls back to "id" when "uid" is absent.
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		return []docmap.Document{{"id": "x"}, {"id": "y"}}, "", nil
	}
	p := NewPager(fetch, 5)
	var ids []string
	for p.Next(context.Background()) {
		ids = append(ids, p.Item()["id"].(string))
	}
	c.Check(ids, check.DeepEquals, []string{"x", "y"})
	c.Check(p.Err(), check.IsNil)
}

func (s *pagerSuite) TestExplicitIDKey(c *check.C) {
	fetch := func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		return []docmap.Document{{"module_id": "m1", "id": "ignored"}}, "", nil
	}
	p := NewPager(fetch, 5)
	p.IDKey = "module_id"
	c.Check(p.Next(context.Background()), check.Equals, true)
	c.Check(p.Item()["module_id"], check.Equals, "m1")
}

func (s *pagerSuite) TestEachDocumentStop(c *check.C) {
	calls := 0
	fetch := pageScript(&calls, "", docs("a", "b"), docs("c", "d"))
	var got []string
	err := eachDocument(context.Background(), fetch, 2, func(doc docmap.Document) error {
		got = append(got, doc["uid"].(string))
		if len(got) == 3 {
			return ErrStop
		}
		return nil
	})
	c.Check(err, check.IsNil)
	c.Check(got, check.DeepEquals, []string{"a", "b", "c"})
}

func (s *pagerSuite) TestEachDocumentCallbackError(c *check.C) {
	calls := 0
	fetch := pageScript(&calls, "", docs("a", "b"))
	boom := errors.New("no")
	err := eachDocument(context.Background(), fetch, 2, func(doc docmap.Document) error {
		return boom
	})
	c.Check(err, check.Equals, boom)
}
