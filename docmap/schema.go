// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package docmap maps typed structs to and from nested JSON
// documents. A Schema declares, per field, where in the wire document
// the value lives; Build and Dump move values between the two shapes.
// Registry adds tagged-union dispatch for wire families whose
// concrete shape is named by a discriminant field.
package docmap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// A Field declares one attribute of a wire type: the key it takes in
// the flat (struct) form, and the dot-delimited path where it lives
// in the nested wire document.
//
// The zero value of the flag fields means the attribute flows in both
// directions. A NoDeserialize field is never read from input and
// always takes Default; a NoSerialize field is dropped on Dump.
type Field struct {
	Attr          string
	Path          string
	Required      bool
	Default       interface{}
	NoSerialize   bool
	NoDeserialize bool
}

// A Schema is the full declaration of a wire type: an ordered set of
// Fields plus optional hooks. PreBuild may rewrite the raw document
// before extraction (used for discriminated envelopes); PostDump may
// rewrite the assembled document after insertion (used to satisfy
// legacy wire shapes).
//
// Field order never affects the result: fields are independent and
// target non-overlapping paths (enforced by NewSchema).
type Schema struct {
	Fields   []Field
	PreBuild func(Document) (Document, error)
	PostDump func(Document) (Document, error)
}

// MissingFieldError indicates a required field with no default was
// absent from an input document.
type MissingFieldError struct {
	Attr string
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q (document path %q)", e.Attr, e.Path)
}

// FieldError indicates a field value that could not be coerced to the
// declared type of the target attribute.
type FieldError struct {
	Attr string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Attr, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewSchema validates the given fields and returns a Schema. Attrs
// must be unique; paths must be unique and non-overlapping (no path
// may be a dot-prefix of another).
func NewSchema(fields ...Field) (*Schema, error) {
	attrs := map[string]bool{}
	paths := map[string]bool{}
	for _, f := range fields {
		if f.Attr == "" || f.Path == "" {
			return nil, fmt.Errorf("field %+v: attr and path must be non-empty", f)
		}
		if attrs[f.Attr] {
			return nil, fmt.Errorf("duplicate attr %q", f.Attr)
		}
		attrs[f.Attr] = true
		if paths[f.Path] {
			return nil, fmt.Errorf("duplicate path %q", f.Path)
		}
		paths[f.Path] = true
	}
	for p := range paths {
		for q := range paths {
			if p != q && strings.HasPrefix(q, p+".") {
				return nil, fmt.Errorf("overlapping paths %q and %q", p, q)
			}
		}
	}
	return &Schema{Fields: fields}, nil
}

// MustSchema is NewSchema for package-level declarations.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithPreBuild returns a copy of s with the given PreBuild hook.
func (s *Schema) WithPreBuild(hook func(Document) (Document, error)) *Schema {
	ss := *s
	ss.PreBuild = hook
	return &ss
}

// WithPostDump returns a copy of s with the given PostDump hook.
func (s *Schema) WithPostDump(hook func(Document) (Document, error)) *Schema {
	ss := *s
	ss.PostDump = hook
	return &ss
}

// Build populates dst (a pointer to a struct whose json tags match
// the schema's Attrs) from the nested wire document doc.
//
// For each deserializable field, the value at the field's Path is
// extracted; a missing value falls back to Default, or produces a
// *MissingFieldError if the field is Required. NoDeserialize fields
// always take Default. Scalar coercion (UUID strings, epoch-ms
// timestamps, nested tagged unions) is performed by the target
// attribute types' own UnmarshalJSON; a coercion failure surfaces as
// a *FieldError naming the attribute.
func (s *Schema) Build(doc Document, dst interface{}) error {
	if s.PreBuild != nil {
		var err error
		doc, err = s.PreBuild(doc)
		if err != nil {
			return err
		}
	}
	flat := map[string]interface{}{}
	for _, f := range s.Fields {
		if f.NoDeserialize {
			if f.Default != nil {
				flat[f.Attr] = f.Default
			}
			continue
		}
		v, ok := Lookup(doc, f.Path)
		if !ok || v == nil {
			if f.Default != nil {
				flat[f.Attr] = f.Default
			} else if f.Required {
				return &MissingFieldError{Attr: f.Attr, Path: f.Path}
			}
			continue
		}
		flat[f.Attr] = v
	}
	return decodeFlat(s, flat, dst)
}

// decodeFlat moves the flat attr→value map into dst via one JSON
// round trip, so coercion behaves exactly like encoding/json
// everywhere else in the SDK.
func decodeFlat(s *Schema, flat map[string]interface{}, dst interface{}) error {
	for attr, v := range flat {
		buf, err := json.Marshal(map[string]interface{}{attr: v})
		if err != nil {
			return &FieldError{Attr: attr, Err: err}
		}
		if err := json.Unmarshal(buf, dst); err != nil {
			return &FieldError{Attr: attr, Err: err}
		}
	}
	return nil
}

// Dump assembles the nested wire document for src (a struct or
// pointer to struct whose json tags match the schema's Attrs).
// NoSerialize fields are dropped; everything else is written at its
// declared Path, creating intermediate objects as needed.
func (s *Schema) Dump(src interface{}) (Document, error) {
	buf, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var flat map[string]interface{}
	if err := json.Unmarshal(buf, &flat); err != nil {
		return nil, err
	}
	doc := Document{}
	for _, f := range s.Fields {
		if f.NoSerialize {
			continue
		}
		v, ok := flat[f.Attr]
		if !ok || v == nil {
			continue
		}
		if err := Set(doc, f.Path, v); err != nil {
			return nil, err
		}
	}
	if s.PostDump != nil {
		return s.PostDump(doc)
	}
	return doc, nil
}
