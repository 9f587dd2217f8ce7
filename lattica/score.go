// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// Score ranks design candidates against objectives, subject to
// constraints. A score is sent when triggering a workflow execution.
type Score interface {
	docmap.Type
	isScore()
}

// ScoreTypes resolves the concrete shape of a score document.
var ScoreTypes = docmap.NewRegistry[Score]("score", "type")

// MLIScore ranks candidates by likelihood of improvement over the
// baselines.
type MLIScore struct {
	Name        string         `json:"name,omitempty"`
	Baselines   []float64      `json:"baselines,omitempty"`
	Objectives  ObjectiveList  `json:"objectives,omitempty"`
	Constraints ConstraintList `json:"constraints,omitempty"`
}

var mliScoreSchema = ScoreTypes.MustRegister("MLI",
	func() Score { return &MLIScore{} },
	docmap.Field{Attr: "name", Path: "name"},
	docmap.Field{Attr: "baselines", Path: "baselines", Required: true},
	docmap.Field{Attr: "objectives", Path: "objectives", Required: true},
	docmap.Field{Attr: "constraints", Path: "constraints"},
)

// Schema implements docmap.Type.
func (*MLIScore) Schema() *docmap.Schema { return mliScoreSchema }

func (*MLIScore) isScore() {}

// MEIScore ranks candidates by expected improvement over the
// baselines.
type MEIScore struct {
	Name        string         `json:"name,omitempty"`
	Baselines   []float64      `json:"baselines,omitempty"`
	Objectives  ObjectiveList  `json:"objectives,omitempty"`
	Constraints ConstraintList `json:"constraints,omitempty"`
}

var meiScoreSchema = ScoreTypes.MustRegister("MEI",
	func() Score { return &MEIScore{} },
	docmap.Field{Attr: "name", Path: "name"},
	docmap.Field{Attr: "baselines", Path: "baselines", Required: true},
	docmap.Field{Attr: "objectives", Path: "objectives", Required: true},
	docmap.Field{Attr: "constraints", Path: "constraints"},
)

// Schema implements docmap.Type.
func (*MEIScore) Schema() *docmap.Schema { return meiScoreSchema }

func (*MEIScore) isScore() {}
