// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// DesignWorkflow is a lattica#designWorkflow resource: a validated
// combination of design space, processor, and predictor that can be
// executed to propose candidate materials.
type DesignWorkflow struct {
	UID           UID          `json:"id,omitempty"`
	Name          string       `json:"name,omitempty"`
	Description   string       `json:"description,omitempty"`
	DesignSpaceID UID          `json:"design_space_id,omitempty"`
	ProcessorID   UID          `json:"processor_id,omitempty"`
	PredictorID   UID          `json:"predictor_id,omitempty"`
	Status        ModuleStatus `json:"status,omitempty"`
	StatusInfo    []string     `json:"status_info,omitempty"`
	Archived      bool         `json:"archived,omitempty"`

	client    *Client
	projectID UID
}

var designWorkflowSchema = docmap.MustSchema(
	docmap.Field{Attr: "id", Path: "id"},
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "description", Path: "description"},
	docmap.Field{Attr: "design_space_id", Path: "config.design_space_id", Required: true},
	docmap.Field{Attr: "processor_id", Path: "config.processor_id"},
	docmap.Field{Attr: "predictor_id", Path: "config.predictor_id", Required: true},
	docmap.Field{Attr: "status", Path: "status", NoSerialize: true},
	docmap.Field{Attr: "status_info", Path: "status_info", NoSerialize: true},
	docmap.Field{Attr: "archived", Path: "archived"},
).WithPreBuild(unwrapEnvelope("workflow"))

// Schema implements docmap.Type.
func (*DesignWorkflow) Schema() *docmap.Schema { return designWorkflowSchema }

// Executions returns the execution collection of this workflow.
func (w *DesignWorkflow) Executions() *ExecutionCollection {
	return &ExecutionCollection{client: w.client, projectID: w.projectID, workflowID: w.UID}
}

// WorkflowCollection accesses the design workflow endpoints of one
// project.
type WorkflowCollection struct {
	client    *Client
	projectID UID
}

func (wc *WorkflowCollection) path() string {
	return fmtPath("v1/projects/%s/design-workflows", wc.projectID)
}

// Get fetches one workflow by uid.
func (wc *WorkflowCollection) Get(ctx context.Context, uid UID) (*DesignWorkflow, error) {
	var doc docmap.Document
	err := wc.client.RequestAndDecodeContext(ctx, &doc, "GET", wc.path()+"/"+uid.String(), nil)
	if err != nil {
		return nil, err
	}
	return wc.build(doc)
}

// Create registers a new workflow; the backend begins validating it
// immediately (status CREATED, then VALIDATING).
func (wc *WorkflowCollection) Create(ctx context.Context, w *DesignWorkflow) (*DesignWorkflow, error) {
	body, err := designWorkflowSchema.Dump(w)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = wc.client.RequestAndDecodeContext(ctx, &doc, "POST", wc.path(), body)
	if err != nil {
		return nil, err
	}
	return wc.build(doc)
}

// Update replaces a workflow's configuration, resetting its
// validation status.
func (wc *WorkflowCollection) Update(ctx context.Context, w *DesignWorkflow) (*DesignWorkflow, error) {
	body, err := designWorkflowSchema.Dump(w)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = wc.client.RequestAndDecodeContext(ctx, &doc, "PUT", wc.path()+"/"+w.UID.String(), body)
	if err != nil {
		return nil, err
	}
	return wc.build(doc)
}

// Archive hides a workflow from default listings.
func (wc *WorkflowCollection) Archive(ctx context.Context, uid UID) error {
	return wc.client.RequestAndDecodeContext(ctx, nil, "PUT", wc.path()+"/"+uid.String()+"/archive", nil)
}

// Each applies f to every workflow in the project. Returning ErrStop
// from f ends the iteration early without error.
func (wc *WorkflowCollection) Each(ctx context.Context, f func(*DesignWorkflow) error) error {
	fetch := wc.client.listPageFunc(wc.path())
	return eachDocument(ctx, fetch, wc.client.perPage(), func(doc docmap.Document) error {
		w, err := wc.build(doc)
		if err != nil {
			return err
		}
		return f(w)
	})
}

// List fetches all workflows in the project.
func (wc *WorkflowCollection) List(ctx context.Context) ([]*DesignWorkflow, error) {
	var workflows []*DesignWorkflow
	err := wc.Each(ctx, func(w *DesignWorkflow) error {
		workflows = append(workflows, w)
		return nil
	})
	return workflows, err
}

// StatusRef returns a fresh-fetching validation status accessor for
// the workflow with the given uid.
func (wc *WorkflowCollection) StatusRef(uid UID) StatusRef {
	return StatusRef{get: func(ctx context.Context) (ModuleStatus, error) {
		w, err := wc.Get(ctx, uid)
		if err != nil {
			return "", err
		}
		return w.Status, nil
	}}
}

func (wc *WorkflowCollection) build(doc docmap.Document) (*DesignWorkflow, error) {
	var w DesignWorkflow
	if err := designWorkflowSchema.Build(doc, &w); err != nil {
		return nil, err
	}
	w.client = wc.client
	w.projectID = wc.projectID
	return &w, nil
}
