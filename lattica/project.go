// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// Project is a lattica#project resource: the top-level container for
// datasets, modules, and workflows.
type Project struct {
	UID         UID       `json:"uid,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   Timestamp `json:"created_at,omitempty"`
	CreatedBy   UID       `json:"created_by,omitempty"`

	client *Client
}

var projectSchema = docmap.MustSchema(
	docmap.Field{Attr: "uid", Path: "uid"},
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "description", Path: "description"},
	docmap.Field{Attr: "status", Path: "status", NoSerialize: true},
	docmap.Field{Attr: "created_at", Path: "audit.created_at", NoSerialize: true},
	docmap.Field{Attr: "created_by", Path: "audit.created_by", NoSerialize: true},
).WithPreBuild(unwrapEnvelope("project"))

// Schema implements docmap.Type.
func (*Project) Schema() *docmap.Schema { return projectSchema }

// unwrapEnvelope unpacks single-resource responses that arrive inside
// a one-key wrapper object, e.g. {"project": {...}}. Listing entries
// arrive bare, so the wrapper key is optional.
func unwrapEnvelope(key string) func(docmap.Document) (docmap.Document, error) {
	return func(doc docmap.Document) (docmap.Document, error) {
		if inner, ok := doc[key].(map[string]interface{}); ok {
			return inner, nil
		}
		return doc, nil
	}
}

// Datasets returns the project-scoped dataset collection.
func (p *Project) Datasets() *DatasetCollection {
	return &DatasetCollection{client: p.client, projectID: p.UID}
}

// GemTables returns the project-scoped table collection.
func (p *Project) GemTables() *GemTableCollection {
	return &GemTableCollection{client: p.client, projectID: p.UID}
}

// Predictors returns the project-scoped predictor module collection.
func (p *Project) Predictors() *PredictorCollection {
	return &PredictorCollection{moduleCollection[Predictor]{
		client:    p.client,
		projectID: p.UID,
		registry:  PredictorTypes,
		path:      "predictors",
	}}
}

// DesignSpaces returns the project-scoped design space module
// collection.
func (p *Project) DesignSpaces() *DesignSpaceCollection {
	return &DesignSpaceCollection{moduleCollection[DesignSpace]{
		client:    p.client,
		projectID: p.UID,
		registry:  DesignSpaceTypes,
		path:      "design-spaces",
	}}
}

// Workflows returns the project-scoped design workflow collection.
func (p *Project) Workflows() *WorkflowCollection {
	return &WorkflowCollection{client: p.client, projectID: p.UID}
}

// ProjectCollection accesses the /v1/projects endpoints.
type ProjectCollection struct {
	client *Client
}

func (pc *ProjectCollection) path() string { return "v1/projects" }

// Get fetches one project by uid.
func (pc *ProjectCollection) Get(ctx context.Context, uid UID) (*Project, error) {
	var doc docmap.Document
	err := pc.client.RequestAndDecodeContext(ctx, &doc, "GET", fmtPath("v1/projects/%s", uid), nil)
	if err != nil {
		return nil, err
	}
	return pc.build(doc)
}

// Create registers a new project and returns the backend's version of
// it (uid and audit fields assigned).
func (pc *ProjectCollection) Create(ctx context.Context, proj *Project) (*Project, error) {
	body, err := projectSchema.Dump(proj)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = pc.client.RequestAndDecodeContext(ctx, &doc, "POST", pc.path(), body)
	if err != nil {
		return nil, err
	}
	return pc.build(doc)
}

// Update replaces the mutable fields of an existing project.
func (pc *ProjectCollection) Update(ctx context.Context, proj *Project) (*Project, error) {
	body, err := projectSchema.Dump(proj)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = pc.client.RequestAndDecodeContext(ctx, &doc, "PUT", fmtPath("v1/projects/%s", proj.UID), body)
	if err != nil {
		return nil, err
	}
	return pc.build(doc)
}

// Delete removes a project.
func (pc *ProjectCollection) Delete(ctx context.Context, uid UID) error {
	return pc.client.RequestAndDecodeContext(ctx, nil, "DELETE", fmtPath("v1/projects/%s", uid), nil)
}

// Each applies f to every project, fetching listing pages as needed.
// Returning ErrStop from f ends the iteration early without error.
func (pc *ProjectCollection) Each(ctx context.Context, f func(*Project) error) error {
	fetch := pc.client.listPageFunc(pc.path())
	return eachDocument(ctx, fetch, pc.client.perPage(), func(doc docmap.Document) error {
		proj, err := pc.build(doc)
		if err != nil {
			return err
		}
		return f(proj)
	})
}

// List fetches all projects.
func (pc *ProjectCollection) List(ctx context.Context) ([]*Project, error) {
	var projects []*Project
	err := pc.Each(ctx, func(p *Project) error {
		projects = append(projects, p)
		return nil
	})
	return projects, err
}

func (pc *ProjectCollection) build(doc docmap.Document) (*Project, error) {
	var proj Project
	if err := projectSchema.Build(doc, &proj); err != nil {
		return nil, err
	}
	proj.client = pc.client
	return &proj, nil
}
