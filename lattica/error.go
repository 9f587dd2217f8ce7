// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// TransactionError is an error response from the API server.
type TransactionError struct {
	Method     string
	URL        url.URL
	StatusCode int
	Status     string
	errors     []string
}

func (e TransactionError) Error() (s string) {
	s = fmt.Sprintf("request failed: %s", e.URL.String())
	if e.Status != "" {
		s = s + ": " + e.Status
	}
	if len(e.errors) > 0 {
		s = s + ": " + strings.Join(e.errors, "; ")
	}
	return
}

// UnmarshalJSON reads the server's error envelope, which carries
// either a list of messages or a single one.
func (e *TransactionError) UnmarshalJSON(data []byte) error {
	var body struct {
		Errors  []string `json:"errors"`
		Message string   `json:"message"`
	}
	err := json.Unmarshal(data, &body)
	if err != nil {
		return err
	}
	e.errors = body.Errors
	if body.Message != "" {
		e.errors = append(e.errors, body.Message)
	}
	return nil
}

func newTransactionError(req *http.Request, resp *http.Response, buf []byte) *TransactionError {
	var e TransactionError
	if json.Unmarshal(buf, &e) != nil {
		// No JSON-formatted error response
		e.errors = nil
	}
	e.Method = req.Method
	e.URL = *req.URL
	if resp != nil {
		e.Status = resp.Status
		e.StatusCode = resp.StatusCode
	}
	return &e
}
