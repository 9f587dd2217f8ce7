// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InstrumentTransport wraps next (nil means http.DefaultTransport)
// with prometheus instrumentation, registering a request counter and
// a request duration histogram on reg. Assign the result as the
// Transport of the http.Client given to Client.Client.
func InstrumentTransport(reg *prometheus.Registry, next http.RoundTripper) (http.RoundTripper, error) {
	if next == nil {
		next = http.DefaultTransport
	}
	count := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lattica",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Number of API requests, by method and response code.",
	}, []string{"code", "method"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lattica",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})
	for _, c := range []prometheus.Collector{count, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return promhttp.InstrumentRoundTripperCounter(count,
		promhttp.InstrumentRoundTripperDuration(duration, next)), nil
}
