// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"

	"github.com/lattica-ai/lattica-go/docmap"
)

// Row selects which material histories become rows of a table.
type Row interface {
	docmap.Type
	isRow()
}

// RowTypes resolves the concrete shape of a row definition document.
var RowTypes = docmap.NewRegistry[Row]("row", "type")

// RowList is a polymorphic list of row definitions.
type RowList []Row

// MarshalJSON implements json.Marshaler.
func (l RowList) MarshalJSON() ([]byte, error) {
	return RowTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *RowList) UnmarshalJSON(data []byte) error {
	items, err := RowTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// MaterialRunByTemplate selects the material runs produced from any
// of the given templates.
type MaterialRunByTemplate struct {
	TemplateUIDs []UID `json:"templates,omitempty"`
}

var materialRunByTemplateSchema = RowTypes.MustRegister("MaterialRunByTemplate",
	func() Row { return &MaterialRunByTemplate{} },
	docmap.Field{Attr: "templates", Path: "templates", Required: true},
)

// Schema implements docmap.Type.
func (*MaterialRunByTemplate) Schema() *docmap.Schema { return materialRunByTemplateSchema }

func (*MaterialRunByTemplate) isRow() {}

// Column defines how one variable of the selected materials becomes a
// table column.
type Column interface {
	docmap.Type
	isColumn()
}

// ColumnTypes resolves the concrete shape of a column definition
// document.
var ColumnTypes = docmap.NewRegistry[Column]("column", "type")

// ColumnList is a polymorphic list of column definitions.
type ColumnList []Column

// MarshalJSON implements json.Marshaler.
func (l ColumnList) MarshalJSON() ([]byte, error) {
	return ColumnTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ColumnList) UnmarshalJSON(data []byte) error {
	items, err := ColumnTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// MeanColumn reports the mean of a real-valued variable.
type MeanColumn struct {
	DataSourceKey string `json:"data_source,omitempty"`
	TargetUnits   string `json:"target_units,omitempty"`
}

var meanColumnSchema = ColumnTypes.MustRegister("MeanColumn",
	func() Column { return &MeanColumn{} },
	docmap.Field{Attr: "data_source", Path: "data_source", Required: true},
	docmap.Field{Attr: "target_units", Path: "target_units"},
)

// Schema implements docmap.Type.
func (*MeanColumn) Schema() *docmap.Schema { return meanColumnSchema }

func (*MeanColumn) isColumn() {}

// StdDevColumn reports the standard deviation of a real-valued
// variable.
type StdDevColumn struct {
	DataSourceKey string `json:"data_source,omitempty"`
	TargetUnits   string `json:"target_units,omitempty"`
}

var stdDevColumnSchema = ColumnTypes.MustRegister("StdDevColumn",
	func() Column { return &StdDevColumn{} },
	docmap.Field{Attr: "data_source", Path: "data_source", Required: true},
	docmap.Field{Attr: "target_units", Path: "target_units"},
)

// Schema implements docmap.Type.
func (*StdDevColumn) Schema() *docmap.Schema { return stdDevColumnSchema }

func (*StdDevColumn) isColumn() {}

// IdentityColumn reports a categorical or string variable as-is.
type IdentityColumn struct {
	DataSourceKey string `json:"data_source,omitempty"`
}

var identityColumnSchema = ColumnTypes.MustRegister("IdentityColumn",
	func() Column { return &IdentityColumn{} },
	docmap.Field{Attr: "data_source", Path: "data_source", Required: true},
)

// Schema implements docmap.Type.
func (*IdentityColumn) Schema() *docmap.Schema { return identityColumnSchema }

func (*IdentityColumn) isColumn() {}

// TableConfig declares how the backend should assemble a table from a
// project's material histories.
type TableConfig struct {
	UID         UID        `json:"uid,omitempty"`
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Rows        RowList    `json:"rows,omitempty"`
	Columns     ColumnList `json:"columns,omitempty"`
}

var tableConfigSchema = docmap.MustSchema(
	docmap.Field{Attr: "uid", Path: "uid"},
	docmap.Field{Attr: "name", Path: "name", Required: true},
	docmap.Field{Attr: "description", Path: "description"},
	docmap.Field{Attr: "rows", Path: "rows"},
	docmap.Field{Attr: "columns", Path: "columns"},
).WithPreBuild(unwrapEnvelope("config"))

// Schema implements docmap.Type.
func (*TableConfig) Schema() *docmap.Schema { return tableConfigSchema }

// Build asks the backend to assemble a new table (or table version)
// from the given configuration.
func (tc *GemTableCollection) Build(ctx context.Context, config *TableConfig) (*GemTable, error) {
	body, err := tableConfigSchema.Dump(config)
	if err != nil {
		return nil, err
	}
	var doc docmap.Document
	err = tc.client.RequestAndDecodeContext(ctx, &doc, "POST", tc.path()+"/build", body)
	if err != nil {
		return nil, err
	}
	return tc.build(doc)
}
