// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// Module is an AI module resource: a predictor, design space, or
// processor. On the wire every module shares an envelope (id, status,
// module_type) around a family-specific config object; the envelope's
// module_type field picks the family, and each family's own
// discriminant picks the concrete config shape.
type Module interface {
	docmap.Type

	// ModuleType returns the envelope-level family tag
	// (e.g. "PREDICTOR").
	ModuleType() string

	// ModuleUID returns the module's uid.
	ModuleUID() UID

	// CurrentStatus returns the validation status recorded on
	// this in-memory copy. It does not re-fetch; use a StatusRef
	// for polling.
	CurrentStatus() ModuleStatus
}

// Envelope-level module family tags.
const (
	ModuleTypePredictor   = "PREDICTOR"
	ModuleTypeDesignSpace = "DESIGN_SPACE"
	ModuleTypeProcessor   = "PROCESSOR"
)

// BuildModule resolves a module document of any family: first-level
// dispatch on module_type, second-level dispatch on the family's own
// discriminant.
func BuildModule(doc docmap.Document) (Module, error) {
	v, ok := docmap.Lookup(doc, "module_type")
	tag, _ := v.(string)
	if !ok || tag == "" {
		return nil, &docmap.UnknownTypeError{Family: "module", Key: "module_type"}
	}
	switch tag {
	case ModuleTypePredictor:
		return PredictorTypes.Build(doc)
	case ModuleTypeDesignSpace:
		return DesignSpaceTypes.Build(doc)
	case ModuleTypeProcessor:
		return ProcessorTypes.Build(doc)
	default:
		return nil, &docmap.UnknownTypeError{Family: "module", Key: "module_type", Value: tag}
	}
}

// ModuleHeader carries the envelope fields shared by every module
// family. It is embedded in each concrete module type.
type ModuleHeader struct {
	UID        UID          `json:"id,omitempty"`
	Status     ModuleStatus `json:"status,omitempty"`
	StatusInfo []string     `json:"status_info,omitempty"`
	Archived   bool         `json:"archived,omitempty"`
}

// ModuleUID implements Module.
func (h *ModuleHeader) ModuleUID() UID { return h.UID }

// CurrentStatus implements Module.
func (h *ModuleHeader) CurrentStatus() ModuleStatus { return h.Status }

// moduleHeaderFields returns the envelope's schema fields. Status
// fields are backend-owned and never serialized back.
func moduleHeaderFields() []docmap.Field {
	return []docmap.Field{
		{Attr: "id", Path: "id"},
		{Attr: "status", Path: "status", NoSerialize: true},
		{Attr: "status_info", Path: "status_info", NoSerialize: true},
		{Attr: "archived", Path: "archived"},
	}
}

// registerModule wires one concrete module type into its family
// registry and returns the schema for the type: envelope fields plus
// the family-specific config fields, with a dump hook stamping both
// discriminants into the assembled document.
func registerModule[T Module](r *docmap.Registry[T], moduleType, tag string, factory func() T, fields ...docmap.Field) *docmap.Schema {
	s := docmap.MustSchema(append(moduleHeaderFields(), fields...)...)
	s = s.WithPostDump(func(doc docmap.Document) (docmap.Document, error) {
		if err := docmap.Set(doc, "module_type", moduleType); err != nil {
			return nil, err
		}
		if err := docmap.Set(doc, r.Key(), tag); err != nil {
			return nil, err
		}
		return doc, nil
	})
	r.Register(tag, factory)
	return s
}

// moduleCollection implements the endpoints shared by all
// project-scoped module collections.
type moduleCollection[T Module] struct {
	client    *Client
	projectID UID
	registry  *docmap.Registry[T]
	path      string
}

func (mc *moduleCollection[T]) basePath() string {
	return fmtPath("v1/projects/%s/", mc.projectID) + mc.path
}

func (mc *moduleCollection[T]) build(doc docmap.Document) (T, error) {
	return mc.registry.Build(doc)
}

// Get fetches one module by uid.
func (mc *moduleCollection[T]) Get(ctx context.Context, uid UID) (T, error) {
	var zero T
	var doc docmap.Document
	err := mc.client.RequestAndDecodeContext(ctx, &doc, "GET", mc.basePath()+"/"+uid.String(), nil)
	if err != nil {
		return zero, err
	}
	return mc.build(doc)
}

// Register stores a new module and returns the backend's version of
// it (uid assigned, status CREATED).
func (mc *moduleCollection[T]) Register(ctx context.Context, module T) (T, error) {
	var zero T
	body, err := module.Schema().Dump(module)
	if err != nil {
		return zero, err
	}
	var doc docmap.Document
	err = mc.client.RequestAndDecodeContext(ctx, &doc, "POST", mc.basePath(), body)
	if err != nil {
		return zero, err
	}
	return mc.build(doc)
}

// Update replaces a stored module's configuration, resetting its
// validation status.
func (mc *moduleCollection[T]) Update(ctx context.Context, module T) (T, error) {
	var zero T
	body, err := module.Schema().Dump(module)
	if err != nil {
		return zero, err
	}
	var doc docmap.Document
	err = mc.client.RequestAndDecodeContext(ctx, &doc, "PUT", mc.basePath()+"/"+module.ModuleUID().String(), body)
	if err != nil {
		return zero, err
	}
	return mc.build(doc)
}

// Archive hides a module from default listings.
func (mc *moduleCollection[T]) Archive(ctx context.Context, uid UID) error {
	return mc.client.RequestAndDecodeContext(ctx, nil, "PUT", mc.basePath()+"/"+uid.String()+"/archive", nil)
}

// Restore reverses Archive.
func (mc *moduleCollection[T]) Restore(ctx context.Context, uid UID) error {
	return mc.client.RequestAndDecodeContext(ctx, nil, "PUT", mc.basePath()+"/"+uid.String()+"/restore", nil)
}

// Each applies f to every module in the collection. Returning ErrStop
// from f ends the iteration early without error.
func (mc *moduleCollection[T]) Each(ctx context.Context, f func(T) error) error {
	fetch := mc.client.listPageFunc(mc.basePath())
	return eachDocument(ctx, fetch, mc.client.perPage(), func(doc docmap.Document) error {
		module, err := mc.build(doc)
		if err != nil {
			return err
		}
		return f(module)
	})
}

// List fetches all modules in the collection.
func (mc *moduleCollection[T]) List(ctx context.Context) ([]T, error) {
	var modules []T
	err := mc.Each(ctx, func(m T) error {
		modules = append(modules, m)
		return nil
	})
	return modules, err
}

// StatusRef returns a fresh-fetching status accessor for the module
// with the given uid. Each Status call re-fetches the module and
// returns the latest status; nothing is cached between calls.
func (mc *moduleCollection[T]) StatusRef(uid UID) StatusRef {
	return StatusRef{get: func(ctx context.Context) (ModuleStatus, error) {
		module, err := mc.Get(ctx, uid)
		if err != nil {
			return "", err
		}
		return module.CurrentStatus(), nil
	}}
}

// StatusRef reports the current backend status of one long-running
// resource. Every Status call performs a fresh fetch and returns an
// immutable snapshot; the original in-memory resource is never
// mutated.
type StatusRef struct {
	get func(context.Context) (ModuleStatus, error)
}

// Status fetches and returns the resource's current status.
func (r StatusRef) Status(ctx context.Context) (ModuleStatus, error) {
	return r.get(ctx)
}
