// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"

	"github.com/lattica-ai/lattica-go/docmap"
)

// ExperimentValue is one descriptor value of a design candidate.
type ExperimentValue interface {
	docmap.Type
	isExperimentValue()
}

// ExperimentValueTypes resolves the concrete shape of an experiment
// value document.
var ExperimentValueTypes = docmap.NewRegistry[ExperimentValue]("experiment value", "type")

// ExperimentValueMap maps descriptor keys to polymorphic experiment
// values, as they appear in a candidate's material record.
type ExperimentValueMap map[string]ExperimentValue

// MarshalJSON implements json.Marshaler.
func (m ExperimentValueMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		buf, err := ExperimentValueTypes.MarshalItem(v)
		if err != nil {
			return nil, err
		}
		out[k] = buf
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *ExperimentValueMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ExperimentValueMap, len(raw))
	for k, buf := range raw {
		v, err := ExperimentValueTypes.BuildJSON(buf)
		if err != nil {
			return err
		}
		out[k] = v
	}
	*m = out
	return nil
}

// RealExperimentValue is a real number with units.
type RealExperimentValue struct {
	Value float64 `json:"value"`
	Units string  `json:"units,omitempty"`
}

var realExperimentValueSchema = ExperimentValueTypes.MustRegister("RealValue",
	func() ExperimentValue { return &RealExperimentValue{} },
	docmap.Field{Attr: "value", Path: "value", Required: true},
	docmap.Field{Attr: "units", Path: "units"},
)

// Schema implements docmap.Type.
func (*RealExperimentValue) Schema() *docmap.Schema { return realExperimentValueSchema }

func (*RealExperimentValue) isExperimentValue() {}

// IntegerExperimentValue is an integer count or index.
type IntegerExperimentValue struct {
	Value int `json:"value"`
}

var integerExperimentValueSchema = ExperimentValueTypes.MustRegister("IntegerValue",
	func() ExperimentValue { return &IntegerExperimentValue{} },
	docmap.Field{Attr: "value", Path: "value", Required: true},
)

// Schema implements docmap.Type.
func (*IntegerExperimentValue) Schema() *docmap.Schema { return integerExperimentValueSchema }

func (*IntegerExperimentValue) isExperimentValue() {}

// CategoricalExperimentValue is one category drawn from a descriptor's
// vocabulary.
type CategoricalExperimentValue struct {
	Category string `json:"category"`
}

var categoricalExperimentValueSchema = ExperimentValueTypes.MustRegister("CategoricalValue",
	func() ExperimentValue { return &CategoricalExperimentValue{} },
	docmap.Field{Attr: "category", Path: "category", Required: true},
)

// Schema implements docmap.Type.
func (*CategoricalExperimentValue) Schema() *docmap.Schema { return categoricalExperimentValueSchema }

func (*CategoricalExperimentValue) isExperimentValue() {}
