// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// Processor is a module describing how a design workflow searches a
// design space.
type Processor interface {
	Module
	isProcessor()
}

// ProcessorTypes resolves the concrete shape of a processor document
// from its config-level discriminant.
var ProcessorTypes = docmap.NewRegistry[Processor]("processor", "config.type")

// GridProcessor enumerates a finite grid over continuous dimensions.
type GridProcessor struct {
	ModuleHeader
	Name        string         `json:"name,omitempty"`
	Description string         `json:"description,omitempty"`
	GridSizes   map[string]int `json:"grid_sizes,omitempty"`
}

var gridProcessorSchema = registerModule(ProcessorTypes, ModuleTypeProcessor, "Grid",
	func() Processor { return &GridProcessor{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "grid_sizes", Path: "config.grid_dimensions"},
)

// Schema implements docmap.Type.
func (*GridProcessor) Schema() *docmap.Schema { return gridProcessorSchema }

// ModuleType implements Module.
func (*GridProcessor) ModuleType() string { return ModuleTypeProcessor }

func (*GridProcessor) isProcessor() {}

// EnumeratedProcessor samples up to MaxCandidates from an enumerable
// design space.
type EnumeratedProcessor struct {
	ModuleHeader
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	MaxCandidates int    `json:"max_candidates,omitempty"`
}

var enumeratedProcessorSchema = registerModule(ProcessorTypes, ModuleTypeProcessor, "Enumerated",
	func() Processor { return &EnumeratedProcessor{} },
	docmap.Field{Attr: "name", Path: "config.name", Required: true},
	docmap.Field{Attr: "description", Path: "config.description"},
	docmap.Field{Attr: "max_candidates", Path: "config.max_size"},
)

// Schema implements docmap.Type.
func (*EnumeratedProcessor) Schema() *docmap.Schema { return enumeratedProcessorSchema }

// ModuleType implements Module.
func (*EnumeratedProcessor) ModuleType() string { return ModuleTypeProcessor }

func (*EnumeratedProcessor) isProcessor() {}
