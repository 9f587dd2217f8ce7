// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"
	"errors"
	"fmt"

	"github.com/lattica-ai/lattica-go/docmap"
)

// ListParams expresses which results are requested in a list/index
// API call.
type ListParams struct {
	PerPage   int    `json:"per_page,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

// listPage is the wire envelope of one page of a listing endpoint:
// raw entries plus the continuation cursor. An empty cursor means no
// further pages.
type listPage struct {
	Entries []docmap.Document `json:"entries"`
	Next    string            `json:"next"`
}

// A PageFunc fetches one page of raw items from a listing endpoint.
// It returns the page's items in backend order and the continuation
// cursor for the next page ("" means end of results).
type PageFunc func(ctx context.Context, perPage int, cursor string) (items []docmap.Document, next string, err error)

// A Pager drives repeated PageFunc calls into a single lazy sequence
// of raw documents. It is forward-only and non-restartable: one Pager
// serves one pagination run. Page fetches are issued strictly
// sequentially, one page ahead of consumption at most.
//
// Within a run, an item whose id has already been yielded is silently
// skipped: the backend's pages may overlap when records mutate
// between fetches. Separately, if the *first* item of a newly fetched
// page has an id seen earlier in the run, the whole page is discarded
// and the sequence ends -- backend cursors have been observed to wrap
// around to the start instead of signaling end-of-results, and
// without this guard such a cursor paginates forever.
//
// Usage follows bufio.Scanner:
//
//	pager := NewPager(fetch, perPage)
//	for pager.Next(ctx) {
//		doc := pager.Item()
//		...
//	}
//	if err := pager.Err(); err != nil { ... }
type Pager struct {
	// IDKey is the document key holding each item's unique id
	// (default "uid", falling back to "id" per item).
	IDKey string

	fetch   PageFunc
	perPage int
	cursor  string
	buf     []docmap.Document
	item    docmap.Document
	seen    map[string]bool
	done    bool
	err     error
}

// NewPager returns a Pager over the given page fetcher. perPage <= 0
// means DefaultPerPage.
func NewPager(fetch PageFunc, perPage int) *Pager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Pager{
		fetch:   fetch,
		perPage: perPage,
		seen:    map[string]bool{},
	}
}

// Next advances the sequence to the next item, fetching another page
// if the current one is exhausted. It returns false when the sequence
// ends, whether normally or with an error (check Err).
func (p *Pager) Next(ctx context.Context) bool {
	for {
		if p.err != nil {
			return false
		}
		for len(p.buf) > 0 {
			doc := p.buf[0]
			p.buf = p.buf[1:]
			id, err := p.itemID(doc)
			if err != nil {
				p.err = err
				return false
			}
			if p.seen[id] {
				// Overlapping page; already yielded.
				continue
			}
			p.seen[id] = true
			p.item = doc
			return true
		}
		if p.done {
			return false
		}
		if !p.fetchPage(ctx) {
			return false
		}
	}
}

// fetchPage loads the next page into p.buf, applying the wrap-around
// guard. It returns false if the sequence is over or failed.
func (p *Pager) fetchPage(ctx context.Context) bool {
	items, next, err := p.fetch(ctx, p.perPage, p.cursor)
	if err != nil {
		p.err = err
		return false
	}
	p.cursor = next
	if next == "" {
		p.done = true
	}
	if len(items) == 0 {
		p.done = true
		return false
	}
	if id, err := p.itemID(items[0]); err != nil {
		p.err = err
		return false
	} else if p.seen[id] {
		// Cursor wrapped around to an item we already
		// returned: drop this page and stop.
		p.done = true
		return false
	}
	p.buf = items
	return true
}

// Item returns the current raw document. It is only valid after a
// Next call that returned true.
func (p *Pager) Item() docmap.Document {
	return p.item
}

// Err returns the first error encountered by the Pager, if any.
func (p *Pager) Err() error {
	return p.err
}

func (p *Pager) itemID(doc docmap.Document) (string, error) {
	key := p.IDKey
	if key == "" {
		key = "uid"
	}
	v, ok := docmap.Lookup(doc, key)
	if !ok && p.IDKey == "" {
		key = "id"
		v, ok = docmap.Lookup(doc, key)
		if !ok {
			return "", fmt.Errorf(`list entry has neither "uid" nor "id" field`)
		}
	}
	if !ok {
		return "", fmt.Errorf("list entry has no %q field", key)
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("list entry has a non-string %q field", key)
	}
	return id, nil
}

// ErrStop stops an Each iteration early without reporting an error to
// the caller.
var ErrStop = errors.New("stop iteration")

// eachDocument runs every document in the paged sequence through f,
// stopping on the first error. Returning ErrStop from f ends the
// iteration without error.
func eachDocument(ctx context.Context, fetch PageFunc, perPage int, f func(docmap.Document) error) error {
	pager := NewPager(fetch, perPage)
	for pager.Next(ctx) {
		if err := f(pager.Item()); err == ErrStop {
			return nil
		} else if err != nil {
			return err
		}
	}
	return pager.Err()
}

// listPageFunc returns a PageFunc issuing GET requests against the
// given listing path with per_page/page_token query parameters.
func (c *Client) listPageFunc(path string) PageFunc {
	return func(ctx context.Context, perPage int, cursor string) ([]docmap.Document, string, error) {
		var page listPage
		err := c.RequestAndDecodeContext(ctx, &page, "GET", path, ListParams{
			PerPage:   perPage,
			PageToken: cursor,
		})
		if err != nil {
			return nil, "", err
		}
		return page.Entries, page.Next, nil
	}
}
