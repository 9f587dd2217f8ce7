// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package docmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Document is a parsed JSON object as it appears on the wire.
type Document = map[string]interface{}

// PathError indicates a schema field path that cannot be written into
// a document, e.g. because another field already occupies a prefix of
// it with a non-object value.
type PathError struct {
	Path string
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("document path %q: %s", e.Path, e.Msg)
}

// Lookup returns the value at the dot-delimited path in doc. The
// second return value reports whether the full path was present.
func Lookup(doc Document, path string) (interface{}, bool) {
	keys := strings.Split(path, ".")
	var cur interface{} = doc
	for _, key := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set writes v at the dot-delimited path in doc, creating
// intermediate objects as needed. It returns a *PathError if an
// intermediate key is already occupied by a non-object value, or if
// the leaf is already set (i.e., two schema fields target overlapping
// paths).
func Set(doc Document, path string, v interface{}) error {
	keys := strings.Split(path, ".")
	cur := doc
	for _, key := range keys[:len(keys)-1] {
		next, ok := cur[key]
		if !ok {
			m := map[string]interface{}{}
			cur[key] = m
			cur = m
			continue
		}
		m, ok := next.(map[string]interface{})
		if !ok {
			return &PathError{Path: path, Msg: fmt.Sprintf("intermediate key %q holds a non-object value", key)}
		}
		cur = m
	}
	leaf := keys[len(keys)-1]
	if _, ok := cur[leaf]; ok {
		return &PathError{Path: path, Msg: "already set"}
	}
	cur[leaf] = v
	return nil
}

// Decode parses raw JSON into a Document.
func Decode(data []byte) (Document, error) {
	var doc Document
	err := json.Unmarshal(data, &doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
