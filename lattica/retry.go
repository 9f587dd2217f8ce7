// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/lattica-ai/lattica-go/ctxlog"
)

// RetryOptions control the retrying HTTP client returned by
// NewRetryingClient. Retries happen entirely below the SDK's request
// layer: pagination and polling never retry on their own.
type RetryOptions struct {
	// Maximum number of retries per request (default 4).
	RetryMax int

	// Minimum and maximum wait between retries (defaults 500ms, 30s).
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Logger for retry attempts. Nil means the package-level
	// ctxlog root logger.
	Logger logrus.FieldLogger
}

// NewRetryingClient returns an http.Client that transparently retries
// transient failures (connection errors, HTTP 429/5xx) with
// exponential backoff. Assign the result to Client.Client.
func NewRetryingClient(opts RetryOptions) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	if opts.RetryMax > 0 {
		rc.RetryMax = opts.RetryMax
	} else {
		rc.RetryMax = 4
	}
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	} else {
		rc.RetryWaitMin = 500 * time.Millisecond
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	} else {
		rc.RetryWaitMax = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = ctxlog.FromContext(nil)
	}
	rc.Logger = retryLogger{logger}
	return rc
}

// retryLogger adapts a logrus logger to retryablehttp's
// LeveledLogger.
type retryLogger struct {
	l logrus.FieldLogger
}

func (r retryLogger) fields(keysAndValues []interface{}) logrus.FieldLogger {
	l := r.l
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if k, ok := keysAndValues[i].(string); ok {
			l = l.WithField(k, keysAndValues[i+1])
		}
	}
	return l
}

func (r retryLogger) Error(msg string, keysAndValues ...interface{}) {
	r.fields(keysAndValues).Error(msg)
}

func (r retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	r.fields(keysAndValues).Warn(msg)
}

func (r retryLogger) Info(msg string, keysAndValues ...interface{}) {
	r.fields(keysAndValues).Info(msg)
}

func (r retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	r.fields(keysAndValues).Debug(msg)
}
