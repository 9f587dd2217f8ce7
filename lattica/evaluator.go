// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// PredictorEvaluator measures the quality of a trained predictor.
type PredictorEvaluator interface {
	docmap.Type
	isEvaluator()
}

// EvaluatorTypes resolves the concrete shape of a predictor evaluator
// document.
var EvaluatorTypes = docmap.NewRegistry[PredictorEvaluator]("predictor evaluator", "type")

// EvaluatorList is a polymorphic list of predictor evaluators.
type EvaluatorList []PredictorEvaluator

// MarshalJSON implements json.Marshaler.
func (l EvaluatorList) MarshalJSON() ([]byte, error) {
	return EvaluatorTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *EvaluatorList) UnmarshalJSON(data []byte) error {
	items, err := EvaluatorTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// CrossValidationEvaluator scores a predictor by k-fold cross
// validation over its training data.
type CrossValidationEvaluator struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	ResponseKeys  []string `json:"responses,omitempty"`
	NFolds        int      `json:"n_folds,omitempty"`
	NTrials       int      `json:"n_trials,omitempty"`
	GroupTogether []string `json:"group_together,omitempty"`
}

var crossValidationEvaluatorSchema = EvaluatorTypes.MustRegister("CrossValidationEvaluator",
	func() PredictorEvaluator { return &CrossValidationEvaluator{} },
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "description", Path: "description"},
	docmap.Field{Attr: "responses", Path: "responses", Required: true},
	docmap.Field{Attr: "n_folds", Path: "n_folds", Default: 5},
	docmap.Field{Attr: "n_trials", Path: "n_trials", Default: 3},
	docmap.Field{Attr: "group_together", Path: "group_together"},
)

// Schema implements docmap.Type.
func (*CrossValidationEvaluator) Schema() *docmap.Schema { return crossValidationEvaluatorSchema }

func (*CrossValidationEvaluator) isEvaluator() {}

// HoldoutSetEvaluator scores a predictor against a held-out data set.
type HoldoutSetEvaluator struct {
	Name         string         `json:"name,omitempty"`
	Description  string         `json:"description,omitempty"`
	ResponseKeys []string       `json:"responses,omitempty"`
	DataSources  DataSourceList `json:"data_sources,omitempty"`
}

var holdoutSetEvaluatorSchema = EvaluatorTypes.MustRegister("HoldoutSetEvaluator",
	func() PredictorEvaluator { return &HoldoutSetEvaluator{} },
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "description", Path: "description"},
	docmap.Field{Attr: "responses", Path: "responses", Required: true},
	docmap.Field{Attr: "data_sources", Path: "data_sources", Required: true},
)

// Schema implements docmap.Type.
func (*HoldoutSetEvaluator) Schema() *docmap.Schema { return holdoutSetEvaluatorSchema }

func (*HoldoutSetEvaluator) isEvaluator() {}
