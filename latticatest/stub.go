// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package latticatest provides stub servers and fixtures for testing
// code built on the Lattica SDK.
package latticatest

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// StubResponse is a canned response status and body.
type StubResponse struct {
	Status int
	Body   string
}

// ServerStub is an http.Handler replying from a map of path to
// StubResponse. Paths with no entry get a 500.
type ServerStub struct {
	Responses map[string]StubResponse
}

func (stub *ServerStub) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	pathResponse, ok := stub.Responses[req.URL.Path]
	if !ok {
		resp.WriteHeader(500)
		return
	}
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(pathResponse.Status)
	io.WriteString(resp, pathResponse.Body)
}

// StubTransport is an http.RoundTripper replying from a map of path
// to response body, recording every request it sees. Paths with no
// entry get a 404.
type StubTransport struct {
	Responses map[string]string
	Requests  []http.Request
	sync.Mutex
}

func (stub *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	stub.Lock()
	stub.Requests = append(stub.Requests, *req)
	stub.Unlock()

	resp := &http.Response{
		Status:     "200 OK",
		StatusCode: 200,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Request:    req,
	}
	str := stub.Responses[req.URL.Path]
	if str == "" {
		resp.Status = "404 Not Found"
		resp.StatusCode = 404
		str = "{}"
	}
	buf := bytes.NewBufferString(str)
	resp.Body = io.NopCloser(buf)
	resp.ContentLength = int64(buf.Len())
	return resp, nil
}
