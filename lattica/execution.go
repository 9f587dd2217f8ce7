// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// WorkflowExecution is one run of a design workflow. Its backend
// state is read through Status, which always fetches a fresh
// snapshot.
type WorkflowExecution struct {
	UID        UID `json:"id,omitempty"`
	WorkflowID UID `json:"workflow_id,omitempty"`

	client    *Client
	projectID UID
}

var workflowExecutionSchema = docmap.MustSchema(
	docmap.Field{Attr: "id", Path: "id"},
	docmap.Field{Attr: "workflow_id", Path: "workflow_id"},
).WithPreBuild(unwrapEnvelope("execution"))

// Schema implements docmap.Type.
func (*WorkflowExecution) Schema() *docmap.Schema { return workflowExecutionSchema }

// Status fetches the execution's current status. Each call performs a
// fresh request; snapshots are never cached.
func (we *WorkflowExecution) Status(ctx context.Context) (ExecutionStatus, error) {
	var st ExecutionStatus
	err := we.client.RequestAndDecodeContext(ctx, &st, "GET", we.path()+"/status", nil)
	return st, err
}

// Candidates applies f to the execution's design candidates in rank
// order, fetching result pages as needed. Returning ErrStop from f
// ends the iteration early without error.
func (we *WorkflowExecution) Candidates(ctx context.Context, f func(*DesignCandidate) error) error {
	fetch := we.client.listPageFunc(we.path() + "/candidates")
	return eachDocument(ctx, fetch, we.client.perPage(), func(doc docmap.Document) error {
		var cand DesignCandidate
		if err := designCandidateSchema.Build(doc, &cand); err != nil {
			return err
		}
		return f(&cand)
	})
}

func (we *WorkflowExecution) path() string {
	return fmtPath("v1/projects/%s/design-workflows/%s/executions/%s", we.projectID, we.WorkflowID, we.UID)
}

// DesignCandidate is one material proposed by a workflow execution,
// with its scored descriptor values.
type DesignCandidate struct {
	UID          UID                `json:"uid,omitempty"`
	MaterialID   UID                `json:"material_id,omitempty"`
	Identifiers  []string           `json:"identifiers,omitempty"`
	PrimaryScore float64            `json:"primary_score,omitempty"`
	MaterialName string             `json:"material_name,omitempty"`
	Values       ExperimentValueMap `json:"values,omitempty"`
}

var designCandidateSchema = docmap.MustSchema(
	docmap.Field{Attr: "uid", Path: "uid"},
	docmap.Field{Attr: "material_id", Path: "material_id"},
	docmap.Field{Attr: "identifiers", Path: "identifiers"},
	docmap.Field{Attr: "primary_score", Path: "primary_score"},
	docmap.Field{Attr: "material_name", Path: "material.name"},
	docmap.Field{Attr: "values", Path: "material.vars"},
)

// Schema implements docmap.Type.
func (*DesignCandidate) Schema() *docmap.Schema { return designCandidateSchema }

// ExecutionCollection accesses the execution endpoints of one design
// workflow.
type ExecutionCollection struct {
	client     *Client
	projectID  UID
	workflowID UID
}

func (ec *ExecutionCollection) path() string {
	return fmtPath("v1/projects/%s/design-workflows/%s/executions", ec.projectID, ec.workflowID)
}

// Trigger starts a new execution of the workflow, ranking candidates
// with the given score.
func (ec *ExecutionCollection) Trigger(ctx context.Context, score Score) (*WorkflowExecution, error) {
	scoreDoc, err := score.Schema().Dump(score)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = ec.client.RequestAndDecodeContext(ctx, &doc, "POST", ec.path(),
		docmap.Document{"score": scoreDoc})
	if err != nil {
		return nil, err
	}
	return ec.build(doc)
}

// Get fetches one execution by uid.
func (ec *ExecutionCollection) Get(ctx context.Context, uid UID) (*WorkflowExecution, error) {
	var doc docmap.Document
	err := ec.client.RequestAndDecodeContext(ctx, &doc, "GET", ec.path()+"/"+uid.String(), nil)
	if err != nil {
		return nil, err
	}
	return ec.build(doc)
}

// Each applies f to every execution of the workflow. Returning
// ErrStop from f ends the iteration early without error.
func (ec *ExecutionCollection) Each(ctx context.Context, f func(*WorkflowExecution) error) error {
	fetch := ec.client.listPageFunc(ec.path())
	return eachDocument(ctx, fetch, ec.client.perPage(), func(doc docmap.Document) error {
		we, err := ec.build(doc)
		if err != nil {
			return err
		}
		return f(we)
	})
}

// List fetches all executions of the workflow.
func (ec *ExecutionCollection) List(ctx context.Context) ([]*WorkflowExecution, error) {
	var executions []*WorkflowExecution
	err := ec.Each(ctx, func(we *WorkflowExecution) error {
		executions = append(executions, we)
		return nil
	})
	return executions, err
}

func (ec *ExecutionCollection) build(doc docmap.Document) (*WorkflowExecution, error) {
	var we WorkflowExecution
	if err := workflowExecutionSchema.Build(doc, &we); err != nil {
		return nil, err
	}
	we.client = ec.client
	we.projectID = ec.projectID
	if we.WorkflowID.IsZero() {
		we.WorkflowID = ec.workflowID
	}
	return &we, nil
}
