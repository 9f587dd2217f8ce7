// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// DesignSpace is a module describing the set of candidate materials a
// design workflow may propose.
type DesignSpace interface {
	Module
	isDesignSpace()
}

// DesignSpaceTypes resolves the concrete shape of a design space
// document from its config-level discriminant.
var DesignSpaceTypes = docmap.NewRegistry[DesignSpace]("design space", "config.type")

// ProductDesignSpace is the cartesian product of its subspaces,
// filtered by constraints.
type ProductDesignSpace struct {
	ModuleHeader
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	Subspaces   []UID          `json:"subspaces,omitempty"`
	Constraints ConstraintList `json:"constraints,omitempty"`
}

var productDesignSpaceSchema = registerModule(DesignSpaceTypes, ModuleTypeDesignSpace, "ProductDesignSpace",
	func() DesignSpace { return &ProductDesignSpace{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "subspaces", Path: "config.subspaces"},
	docmap.Field{Attr: "constraints", Path: "config.constraints"},
)

// Schema implements docmap.Type.
func (*ProductDesignSpace) Schema() *docmap.Schema { return productDesignSpaceSchema }

// ModuleType implements Module.
func (*ProductDesignSpace) ModuleType() string { return ModuleTypeDesignSpace }

func (*ProductDesignSpace) isDesignSpace() {}

// EnumeratedDesignSpace is an explicit list of candidate materials,
// one descriptor-keyed row per candidate.
type EnumeratedDesignSpace struct {
	ModuleHeader
	Name        string                   `json:"name,omitempty"`
	Description string                   `json:"description,omitempty"`
	Data        []map[string]interface{} `json:"data,omitempty"`
}

var enumeratedDesignSpaceSchema = registerModule(DesignSpaceTypes, ModuleTypeDesignSpace, "EnumeratedDesignSpace",
	func() DesignSpace { return &EnumeratedDesignSpace{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "data", Path: "config.data"},
)

// Schema implements docmap.Type.
func (*EnumeratedDesignSpace) Schema() *docmap.Schema { return enumeratedDesignSpaceSchema }

// ModuleType implements Module.
func (*EnumeratedDesignSpace) ModuleType() string { return ModuleTypeDesignSpace }

func (*EnumeratedDesignSpace) isDesignSpace() {}

// DesignSpaceCollection accesses the design space endpoints of one
// project.
type DesignSpaceCollection struct {
	moduleCollection[DesignSpace]
}
