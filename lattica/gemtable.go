// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// GemTable is a lattica#gemTable resource: a versioned, read-only
// tabular view over a project's material histories. Tables are built
// by the backend; the client only lists and fetches them. (Bulk
// download of table contents is out of scope for this SDK.)
type GemTable struct {
	UID         UID    `json:"uid,omitempty"`
	Version     int    `json:"version,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	client    *Client
	projectID UID
}

var gemTableSchema = docmap.MustSchema(
	docmap.Field{Attr: "uid", Path: "uid"},
	docmap.Field{Attr: "version", Path: "version"},
	docmap.Field{Attr: "name", Path: "metadata.name"},
	docmap.Field{Attr: "description", Path: "metadata.description"},
).WithPreBuild(unwrapEnvelope("table"))

// Schema implements docmap.Type.
func (*GemTable) Schema() *docmap.Schema { return gemTableSchema }

// GemTableCollection accesses the table endpoints of one project.
type GemTableCollection struct {
	client    *Client
	projectID UID
}

func (tc *GemTableCollection) path() string {
	return fmtPath("v1/projects/%s/tables", tc.projectID)
}

// Get fetches the latest version of one table by uid.
func (tc *GemTableCollection) Get(ctx context.Context, uid UID) (*GemTable, error) {
	var doc docmap.Document
	err := tc.client.RequestAndDecodeContext(ctx, &doc, "GET", tc.path()+"/"+uid.String(), nil)
	if err != nil {
		return nil, err
	}
	return tc.build(doc)
}

// GetVersion fetches a specific version of a table.
func (tc *GemTableCollection) GetVersion(ctx context.Context, uid UID, version int) (*GemTable, error) {
	var doc docmap.Document
	err := tc.client.RequestAndDecodeContext(ctx, &doc, "GET", fmtPath("v1/projects/%s/tables/%s/versions/%v", tc.projectID, uid, version), nil)
	if err != nil {
		return nil, err
	}
	return tc.build(doc)
}

// Each applies f to every table in the project. Returning ErrStop
// from f ends the iteration early without error.
func (tc *GemTableCollection) Each(ctx context.Context, f func(*GemTable) error) error {
	fetch := tc.client.listPageFunc(tc.path())
	return eachDocument(ctx, fetch, tc.client.perPage(), func(doc docmap.Document) error {
		table, err := tc.build(doc)
		if err != nil {
			return err
		}
		return f(table)
	})
}

// List fetches all tables in the project.
func (tc *GemTableCollection) List(ctx context.Context) ([]*GemTable, error) {
	var tables []*GemTable
	err := tc.Each(ctx, func(t *GemTable) error {
		tables = append(tables, t)
		return nil
	})
	return tables, err
}

func (tc *GemTableCollection) build(doc docmap.Document) (*GemTable, error) {
	var table GemTable
	if err := gemTableSchema.Build(doc, &table); err != nil {
		return nil, err
	}
	table.client = tc.client
	table.projectID = tc.projectID
	return &table, nil
}
