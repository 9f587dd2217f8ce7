// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package latticatest

import "github.com/google/uuid"

// Fixture identifiers used across SDK tests. Stable values so test
// failures print recognizable ids.
const (
	ProjectUID   = "11111111-1111-4111-8111-111111111111"
	DatasetUID   = "22222222-2222-4222-8222-222222222222"
	PredictorUID = "33333333-3333-4333-8333-333333333333"
	WorkflowUID  = "44444444-4444-4444-8444-444444444444"
	ExecutionUID = "55555555-5555-4555-8555-555555555555"
)

// SampleProject returns a project document in wire form.
func SampleProject() Doc {
	return Doc{
		"uid":         ProjectUID,
		"name":        "alloy screening",
		"description": "fixture project",
		"status":      "CREATED",
		"audit": Doc{
			"created_at": float64(1700000000000),
			"created_by": "aaaaaaaa-0000-4000-8000-000000000001",
		},
	}
}

// SamplePredictor returns a simple ML predictor document in wire
// form, status READY.
func SamplePredictor() Doc {
	return Doc{
		"id":          PredictorUID,
		"module_type": "PREDICTOR",
		"status":      "READY",
		"archived":    false,
		"config": Doc{
			"type":        "Simple",
			"name":        "density model",
			"description": "fixture predictor",
			"inputs":      []interface{}{"chem formula"},
			"outputs":     []interface{}{"density"},
		},
	}
}

func newStubUID() string {
	return uuid.NewString()
}
