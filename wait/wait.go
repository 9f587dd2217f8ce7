// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package wait polls backend-driven state transitions with a bounded
// timeout. The backend offers no push channel, so a fixed-interval
// poll is the only way to observe a module finishing validation or an
// execution finishing its run.
package wait

import (
	"context"
	"fmt"
	"time"

	"github.com/lattica-ai/lattica-go/ctxlog"
	"github.com/lattica-ai/lattica-go/lattica"
)

// TimeoutError is returned by the domain wrappers when the condition
// is still pending at the deadline, so callers can tell "gave up
// waiting" apart from a definitive failure.
type TimeoutError struct {
	Elapsed    time.Duration
	Timeout    time.Duration
	LastStatus string
}

func (e *TimeoutError) Error() string {
	s := fmt.Sprintf("condition not met after %v (timeout %v)", e.Elapsed.Round(time.Millisecond), e.Timeout)
	if e.LastStatus != "" {
		s += fmt.Sprintf(", last status %q", e.LastStatus)
	}
	return s
}

// Until calls probe every interval until it returns true or the
// elapsed time exceeds timeout, and returns the final probe result.
// It never sleeps after a conclusive probe, and it does not treat
// running out of time as an error: the domain wrappers add that
// policy where silently reporting false would be misleading.
func Until(probe func() (bool, error), timeout, interval time.Duration) (bool, error) {
	start := time.Now()
	for {
		ok, err := probe()
		if err != nil || ok {
			return ok, err
		}
		if time.Since(start) >= timeout {
			return false, nil
		}
		time.Sleep(interval)
	}
}

// A StatusSource reports the current validation status of a module or
// workflow. Implementations must fetch a fresh status on every call;
// lattica's StatusRef does.
type StatusSource interface {
	Status(ctx context.Context) (lattica.ModuleStatus, error)
}

// WhileValidating polls src until its status leaves the in-progress
// set (CREATED, VALIDATING), logging the current status and elapsed
// time on each tick. It returns the terminal status, or a
// *TimeoutError if the status is still in progress when timeout
// elapses.
func WhileValidating(ctx context.Context, src StatusSource, timeout, interval time.Duration) (lattica.ModuleStatus, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	var last lattica.ModuleStatus
	var probeErr error
	done, err := Until(func() (bool, error) {
		status, err := src.Status(ctx)
		if err != nil {
			probeErr = err
			return false, err
		}
		last = status
		logger.WithField("status", status).
			WithField("elapsed", time.Since(start).Round(time.Millisecond)).
			Info("waiting for validation")
		return !status.InProgress(), nil
	}, timeout, interval)
	if probeErr != nil {
		return "", probeErr
	}
	if !done {
		return last, &TimeoutError{
			Elapsed:    time.Since(start),
			Timeout:    timeout,
			LastStatus: string(last),
		}
	}
	return last, err
}

// An Execution exposes the status endpoint of a workflow execution.
// Implementations must fetch a fresh snapshot on every call;
// lattica's WorkflowExecution does.
type Execution interface {
	Status(ctx context.Context) (lattica.ExecutionStatus, error)
}

// WhileExecuting polls exec until its status snapshot reports that it
// is no longer in progress, logging progress on each tick. It returns
// the terminal snapshot, or a *TimeoutError if the execution is still
// running when timeout elapses. Whether the terminal status is
// SUCCEEDED or FAILED is for the caller to inspect.
func WhileExecuting(ctx context.Context, exec Execution, timeout, interval time.Duration) (lattica.ExecutionStatus, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	var last lattica.ExecutionStatus
	var probeErr error
	done, err := Until(func() (bool, error) {
		st, err := exec.Status(ctx)
		if err != nil {
			probeErr = err
			return false, err
		}
		last = st
		logger.WithField("status", st.Status).
			WithField("elapsed", time.Since(start).Round(time.Millisecond)).
			Info("waiting for execution")
		return !st.InProgress, nil
	}, timeout, interval)
	if probeErr != nil {
		return lattica.ExecutionStatus{}, probeErr
	}
	if !done {
		return last, &TimeoutError{
			Elapsed:    time.Since(start),
			Timeout:    timeout,
			LastStatus: last.Status,
		}
	}
	return last, err
}
