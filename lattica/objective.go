// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// Objective scores a candidate on one output descriptor.
type Objective interface {
	docmap.Type
	isObjective()
}

// ObjectiveTypes resolves the concrete shape of an objective
// document.
var ObjectiveTypes = docmap.NewRegistry[Objective]("objective", "type")

// ObjectiveList is a polymorphic list of objectives.
type ObjectiveList []Objective

// MarshalJSON implements json.Marshaler.
func (l ObjectiveList) MarshalJSON() ([]byte, error) {
	return ObjectiveTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ObjectiveList) UnmarshalJSON(data []byte) error {
	items, err := ObjectiveTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// ScalarMaxObjective prefers larger values of a descriptor.
type ScalarMaxObjective struct {
	DescriptorKey string `json:"descriptor_key,omitempty"`
}

var scalarMaxObjectiveSchema = ObjectiveTypes.MustRegister("ScalarMax",
	func() Objective { return &ScalarMaxObjective{} },
	docmap.Field{Attr: "descriptor_key", Path: "descriptor_key", Required: true},
)

// Schema implements docmap.Type.
func (*ScalarMaxObjective) Schema() *docmap.Schema { return scalarMaxObjectiveSchema }

func (*ScalarMaxObjective) isObjective() {}

// ScalarMinObjective prefers smaller values of a descriptor.
type ScalarMinObjective struct {
	DescriptorKey string `json:"descriptor_key,omitempty"`
}

var scalarMinObjectiveSchema = ObjectiveTypes.MustRegister("ScalarMin",
	func() Objective { return &ScalarMinObjective{} },
	docmap.Field{Attr: "descriptor_key", Path: "descriptor_key", Required: true},
)

// Schema implements docmap.Type.
func (*ScalarMinObjective) Schema() *docmap.Schema { return scalarMinObjectiveSchema }

func (*ScalarMinObjective) isObjective() {}
