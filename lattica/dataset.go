// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// Dataset is a lattica#dataset resource: a collection of material
// data owned by a project.
type Dataset struct {
	UID       UID       `json:"uid,omitempty"`
	Name      string    `json:"name,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	Deleted   bool      `json:"deleted,omitempty"`
	CreatedAt Timestamp `json:"created_at,omitempty"`

	client    *Client
	projectID UID
}

var datasetSchema = docmap.MustSchema(
	docmap.Field{Attr: "uid", Path: "uid"},
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "summary", Path: "summary"},
	docmap.Field{Attr: "deleted", Path: "deleted", NoSerialize: true},
	docmap.Field{Attr: "created_at", Path: "audit.created_at", NoSerialize: true},
).WithPreBuild(unwrapEnvelope("dataset"))

// Schema implements docmap.Type.
func (*Dataset) Schema() *docmap.Schema { return datasetSchema }

// DatasetCollection accesses the dataset endpoints of one project.
type DatasetCollection struct {
	client    *Client
	projectID UID
}

func (dc *DatasetCollection) path() string {
	return fmtPath("v1/projects/%s/datasets", dc.projectID)
}

// Get fetches one dataset by uid.
func (dc *DatasetCollection) Get(ctx context.Context, uid UID) (*Dataset, error) {
	var doc docmap.Document
	err := dc.client.RequestAndDecodeContext(ctx, &doc, "GET", dc.path()+"/"+uid.String(), nil)
	if err != nil {
		return nil, err
	}
	return dc.build(doc)
}

// Create registers a new dataset in the project.
func (dc *DatasetCollection) Create(ctx context.Context, ds *Dataset) (*Dataset, error) {
	body, err := datasetSchema.Dump(ds)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = dc.client.RequestAndDecodeContext(ctx, &doc, "POST", dc.path(), body)
	if err != nil {
		return nil, err
	}
	return dc.build(doc)
}

// Delete removes a dataset from the project.
func (dc *DatasetCollection) Delete(ctx context.Context, uid UID) error {
	return dc.client.RequestAndDecodeContext(ctx, nil, "DELETE", dc.path()+"/"+uid.String(), nil)
}

// Each applies f to every dataset in the project. Returning ErrStop
// from f ends the iteration early without error.
func (dc *DatasetCollection) Each(ctx context.Context, f func(*Dataset) error) error {
	fetch := dc.client.listPageFunc(dc.path())
	return eachDocument(ctx, fetch, dc.client.perPage(), func(doc docmap.Document) error {
		ds, err := dc.build(doc)
		if err != nil {
			return err
		}
		return f(ds)
	})
}

// List fetches all datasets in the project.
func (dc *DatasetCollection) List(ctx context.Context) ([]*Dataset, error) {
	var datasets []*Dataset
	err := dc.Each(ctx, func(ds *Dataset) error {
		datasets = append(datasets, ds)
		return nil
	})
	return datasets, err
}

func (dc *DatasetCollection) build(doc docmap.Document) (*Dataset, error) {
	var ds Dataset
	if err := datasetSchema.Build(doc, &ds); err != nil {
		return nil, err
	}
	ds.client = dc.client
	ds.projectID = dc.projectID
	return &ds, nil
}
