// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package docmap

import (
	"encoding/json"
	"fmt"
)

// Type is implemented by every concrete wire type: it exposes the
// Schema governing the type's wire form.
type Type interface {
	Schema() *Schema
}

// UnknownTypeError indicates a document whose discriminant field
// names no concrete type known to the family's registry.
type UnknownTypeError struct {
	Family string
	Key    string
	Value  string
}

func (e *UnknownTypeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s document has no %q discriminant", e.Family, e.Key)
	}
	return fmt.Sprintf("unknown %s type %q", e.Family, e.Value)
}

// A Registry resolves the concrete type of one wire family. Each
// family keeps its own registry with its own discriminant key:
// discriminant field names are not uniform across the protocol, so
// dispatch is deliberately per-family rather than global.
type Registry[T Type] struct {
	family    string
	key       string
	factories map[string]func() T
}

// NewRegistry returns an empty registry for the named family, using
// the given dot-delimited discriminant key path.
func NewRegistry[T Type](family, key string) *Registry[T] {
	return &Registry[T]{
		family:    family,
		key:       key,
		factories: map[string]func() T{},
	}
}

// Register associates a discriminant value with a factory for the
// concrete type. Re-registering a tag panics: tag tables are written
// once, at package init.
func (r *Registry[T]) Register(tag string, factory func() T) {
	if _, dup := r.factories[tag]; dup {
		panic(fmt.Sprintf("%s registry: duplicate tag %q", r.family, tag))
	}
	r.factories[tag] = factory
}

// MustRegister registers factory under tag and returns a schema for
// the concrete type: the given fields plus a dump hook stamping the
// discriminant into the assembled document, so callers never populate
// the tag by hand.
func (r *Registry[T]) MustRegister(tag string, factory func() T, fields ...Field) *Schema {
	s := MustSchema(fields...)
	s = s.WithPostDump(func(doc Document) (Document, error) {
		if err := Set(doc, r.key, tag); err != nil {
			return nil, err
		}
		return doc, nil
	})
	r.Register(tag, factory)
	return s
}

// Key returns the registry's discriminant key path.
func (r *Registry[T]) Key() string { return r.key }

// TagOf returns the discriminant value of doc, or an
// *UnknownTypeError if the discriminant is absent or not a string.
func (r *Registry[T]) TagOf(doc Document) (string, error) {
	v, ok := Lookup(doc, r.key)
	if !ok {
		return "", &UnknownTypeError{Family: r.family, Key: r.key}
	}
	tag, ok := v.(string)
	if !ok || tag == "" {
		return "", &UnknownTypeError{Family: r.family, Key: r.key}
	}
	return tag, nil
}

// New returns a fresh zero instance of the concrete type named by
// tag, or an *UnknownTypeError.
func (r *Registry[T]) New(tag string) (T, error) {
	factory, ok := r.factories[tag]
	if !ok {
		var zero T
		return zero, &UnknownTypeError{Family: r.family, Key: r.key, Value: tag}
	}
	return factory(), nil
}

// Build resolves doc's concrete type via the discriminant, then
// delegates to that type's schema.
func (r *Registry[T]) Build(doc Document) (T, error) {
	var zero T
	tag, err := r.TagOf(doc)
	if err != nil {
		return zero, err
	}
	obj, err := r.New(tag)
	if err != nil {
		return zero, err
	}
	if err := obj.Schema().Build(doc, obj); err != nil {
		return zero, err
	}
	return obj, nil
}

// BuildJSON is Build on raw JSON bytes.
func (r *Registry[T]) BuildJSON(data []byte) (T, error) {
	var zero T
	doc, err := Decode(data)
	if err != nil {
		return zero, err
	}
	return r.Build(doc)
}

// MarshalItem dumps one family member through its schema and encodes
// the resulting document.
func (r *Registry[T]) MarshalItem(item T) ([]byte, error) {
	doc, err := item.Schema().Dump(item)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// UnmarshalList decodes a JSON array of family documents, resolving
// each element's concrete type.
func (r *Registry[T]) UnmarshalList(data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raw))
	for _, buf := range raw {
		item, err := r.BuildJSON(buf)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// MarshalList encodes a slice of family members as a JSON array of
// dumped documents.
func (r *Registry[T]) MarshalList(items []T) ([]byte, error) {
	docs := make([]Document, 0, len(items))
	for _, item := range items {
		doc, err := item.Schema().Dump(item)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return json.Marshal(docs)
}
