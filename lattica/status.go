// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

// ModuleStatus is a string corresponding to a valid module (predictor
// or design space) validation state. The backend transitions a module
// CREATED → VALIDATING → one of the terminal states.
type ModuleStatus string

const (
	ModuleStatusCreated    = ModuleStatus("CREATED")
	ModuleStatusValidating = ModuleStatus("VALIDATING")
	ModuleStatusReady      = ModuleStatus("READY")
	ModuleStatusInvalid    = ModuleStatus("INVALID")
	ModuleStatusError      = ModuleStatus("ERROR")
)

// InProgress reports whether the status is non-terminal: the backend
// has not finished validating the module.
func (s ModuleStatus) InProgress() bool {
	return s == ModuleStatusCreated || s == ModuleStatusValidating
}

// ExecutionStatus is a snapshot of a workflow execution's state, as
// returned by the execution status endpoint. Snapshots are immutable;
// pollers fetch a fresh one per tick rather than mutating a shared
// record.
type ExecutionStatus struct {
	Status     string   `json:"status"`
	InProgress bool     `json:"in_progress"`
	Info       []string `json:"status_info,omitempty"`
}

// Execution status vocabulary.
const (
	ExecutionStatusInProgress = "INPROGRESS"
	ExecutionStatusSucceeded  = "SUCCEEDED"
	ExecutionStatusFailed     = "FAILED"
	ExecutionStatusTimedOut   = "TIMEDOUT"
)
