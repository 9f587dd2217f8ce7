// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// Constraint restricts the candidates a design space may propose.
type Constraint interface {
	docmap.Type
	isConstraint()
}

// ConstraintTypes resolves the concrete shape of a constraint
// document.
var ConstraintTypes = docmap.NewRegistry[Constraint]("constraint", "type")

// ConstraintList is a polymorphic list of constraints.
type ConstraintList []Constraint

// MarshalJSON implements json.Marshaler.
func (l ConstraintList) MarshalJSON() ([]byte, error) {
	return ConstraintTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ConstraintList) UnmarshalJSON(data []byte) error {
	items, err := ConstraintTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// ScalarRangeConstraint keeps a real-valued descriptor inside
// [Min, Max].
type ScalarRangeConstraint struct {
	DescriptorKey string   `json:"descriptor_key,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	// No omitempty: an absent key means inclusive (the schema
	// default), so false must always be written out.
	MinInclusive bool `json:"min_inclusive"`
	MaxInclusive bool `json:"max_inclusive"`
}

var scalarRangeConstraintSchema = ConstraintTypes.MustRegister("ScalarRange",
	func() Constraint { return &ScalarRangeConstraint{} },
	docmap.Field{Attr: "descriptor_key", Path: "descriptor_key", Required: true},
	docmap.Field{Attr: "min", Path: "min"},
	docmap.Field{Attr: "max", Path: "max"},
	docmap.Field{Attr: "min_inclusive", Path: "min_inclusive", Default: true},
	docmap.Field{Attr: "max_inclusive", Path: "max_inclusive", Default: true},
)

// Schema implements docmap.Type.
func (*ScalarRangeConstraint) Schema() *docmap.Schema { return scalarRangeConstraintSchema }

func (*ScalarRangeConstraint) isConstraint() {}

// AcceptableCategoriesConstraint keeps a categorical descriptor
// within an allowed set of values.
type AcceptableCategoriesConstraint struct {
	DescriptorKey string   `json:"descriptor_key,omitempty"`
	Categories    []string `json:"acceptable_categories,omitempty"`
}

var acceptableCategoriesConstraintSchema = ConstraintTypes.MustRegister("AcceptableCategoriesConstraint",
	func() Constraint { return &AcceptableCategoriesConstraint{} },
	docmap.Field{Attr: "descriptor_key", Path: "descriptor_key", Required: true},
	docmap.Field{Attr: "acceptable_categories", Path: "acceptable_categories", Required: true},
)

// Schema implements docmap.Type.
func (*AcceptableCategoriesConstraint) Schema() *docmap.Schema {
	return acceptableCategoriesConstraintSchema
}

func (*AcceptableCategoriesConstraint) isConstraint() {}
