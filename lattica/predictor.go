// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// Predictor is a module that maps input descriptors to predicted
// output descriptors.
type Predictor interface {
	Module
	isPredictor()
}

// PredictorTypes resolves the concrete shape of a predictor document
// from its config-level discriminant.
var PredictorTypes = docmap.NewRegistry[Predictor]("predictor", "config.type")

// PredictorList is a polymorphic list of predictors, e.g. the nodes
// of a graph predictor.
type PredictorList []Predictor

// MarshalJSON implements json.Marshaler.
func (l PredictorList) MarshalJSON() ([]byte, error) {
	return PredictorTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *PredictorList) UnmarshalJSON(data []byte) error {
	items, err := PredictorTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// SimpleMLPredictor trains one machine-learned model from the listed
// inputs to the listed outputs.
type SimpleMLPredictor struct {
	ModuleHeader
	Name            string         `json:"name,omitempty"`
	Description     string         `json:"description,omitempty"`
	Inputs          []string       `json:"inputs,omitempty"`
	Outputs         []string       `json:"outputs,omitempty"`
	LatentVariables []string       `json:"latent_variables,omitempty"`
	TrainingData    DataSourceList `json:"training_data,omitempty"`
}

var simpleMLPredictorSchema = registerModule(PredictorTypes, ModuleTypePredictor, "Simple",
	func() Predictor { return &SimpleMLPredictor{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "inputs", Path: "config.inputs"},
	docmap.Field{Attr: "outputs", Path: "config.outputs"},
	docmap.Field{Attr: "latent_variables", Path: "config.latent_variables"},
	docmap.Field{Attr: "training_data", Path: "config.training_data"},
)

// Schema implements docmap.Type.
func (*SimpleMLPredictor) Schema() *docmap.Schema { return simpleMLPredictorSchema }

// ModuleType implements Module.
func (*SimpleMLPredictor) ModuleType() string { return ModuleTypePredictor }

func (*SimpleMLPredictor) isPredictor() {}

// GraphPredictor composes child predictors into a directed graph.
type GraphPredictor struct {
	ModuleHeader
	Name         string         `json:"name,omitempty"`
	Description  string         `json:"description,omitempty"`
	Predictors   PredictorList  `json:"predictors,omitempty"`
	TrainingData DataSourceList `json:"training_data,omitempty"`
}

var graphPredictorSchema = registerModule(PredictorTypes, ModuleTypePredictor, "Graph",
	func() Predictor { return &GraphPredictor{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "predictors", Path: "config.predictors"},
	docmap.Field{Attr: "training_data", Path: "config.training_data"},
)

// Schema implements docmap.Type.
func (*GraphPredictor) Schema() *docmap.Schema { return graphPredictorSchema }

// ModuleType implements Module.
func (*GraphPredictor) ModuleType() string { return ModuleTypePredictor }

func (*GraphPredictor) isPredictor() {}

// ExpressionPredictor computes an output descriptor from an analytic
// expression over aliased input descriptors.
type ExpressionPredictor struct {
	ModuleHeader
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Expression  string            `json:"expression,omitempty"`
	Output      string            `json:"output,omitempty"`
	Aliases     map[string]string `json:"aliases,omitempty"`
}

var expressionPredictorSchema = registerModule(PredictorTypes, ModuleTypePredictor, "Expression",
	func() Predictor { return &ExpressionPredictor{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "expression", Path: "config.expression", Required: true},
	docmap.Field{Attr: "output", Path: "config.output"},
	docmap.Field{Attr: "aliases", Path: "config.aliases"},
)

// Schema implements docmap.Type.
func (*ExpressionPredictor) Schema() *docmap.Schema { return expressionPredictorSchema }

// ModuleType implements Module.
func (*ExpressionPredictor) ModuleType() string { return ModuleTypePredictor }

func (*ExpressionPredictor) isPredictor() {}

// PredictorCollection accesses the predictor endpoints of one
// project.
type PredictorCollection struct {
	moduleCollection[Predictor]
}

// Evaluate asks the backend to evaluate a stored predictor with the
// given evaluators, returning the evaluation job (poll its status via
// StatusRef until terminal).
func (pc *PredictorCollection) Evaluate(ctx context.Context, uid UID, evaluators EvaluatorList) (*PredictorEvaluation, error) {
	var ev PredictorEvaluation
	err := pc.client.RequestAndDecodeContext(ctx, &ev, "POST", pc.basePath()+"/"+uid.String()+"/evaluate",
		map[string]interface{}{"evaluators": evaluators})
	if err != nil {
		return nil, err
	}
	ev.client = pc.client
	ev.projectID = pc.projectID
	return &ev, nil
}

// PredictorEvaluation is the job record created by
// PredictorCollection.Evaluate.
type PredictorEvaluation struct {
	UID        UID          `json:"uid"`
	Status     ModuleStatus `json:"status"`
	StatusInfo []string     `json:"status_info,omitempty"`

	client    *Client
	projectID UID
}

// StatusRef returns a fresh-fetching status accessor for the
// evaluation.
func (ev *PredictorEvaluation) StatusRef() StatusRef {
	return StatusRef{get: func(ctx context.Context) (ModuleStatus, error) {
		var cur PredictorEvaluation
		err := ev.client.RequestAndDecodeContext(ctx, &cur, "GET",
			fmtPath("v1/projects/%s/predictor-evaluations/%s", ev.projectID, ev.UID), nil)
		if err != nil {
			return "", err
		}
		return cur.Status, nil
	}}
}
