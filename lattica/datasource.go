// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"github.com/lattica-ai/lattica-go/docmap"
)

// DataSource names a body of training data for a predictor or
// evaluator.
type DataSource interface {
	docmap.Type
	isDataSource()
}

// DataSourceTypes resolves the concrete shape of a data source
// document.
var DataSourceTypes = docmap.NewRegistry[DataSource]("data source", "type")

// DataSourceList is a polymorphic list of data sources.
type DataSourceList []DataSource

// MarshalJSON implements json.Marshaler.
func (l DataSourceList) MarshalJSON() ([]byte, error) {
	return DataSourceTypes.MarshalList(l)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *DataSourceList) UnmarshalJSON(data []byte) error {
	items, err := DataSourceTypes.UnmarshalList(data)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

// CSVDataSource reads training data from an uploaded CSV file.
type CSVDataSource struct {
	FileURL          string            `json:"file_url,omitempty"`
	IdentifierColumn string            `json:"identifier_column,omitempty"`
	ColumnTypes      map[string]string `json:"column_types,omitempty"`
}

var csvDataSourceSchema = DataSourceTypes.MustRegister("csv_data_source",
	func() DataSource { return &CSVDataSource{} },
	docmap.Field{Attr: "file_url", Path: "file_link.url", Required: true},
	docmap.Field{Attr: "identifier_column", Path: "identifier_column"},
	docmap.Field{Attr: "column_types", Path: "column_types"},
)

// Schema implements docmap.Type.
func (*CSVDataSource) Schema() *docmap.Schema { return csvDataSourceSchema }

func (*CSVDataSource) isDataSource() {}

// GemTableDataSource reads training data from a versioned table.
type GemTableDataSource struct {
	TableUID     UID `json:"table_id,omitempty"`
	TableVersion int `json:"table_version,omitempty"`
}

var gemTableDataSourceSchema = DataSourceTypes.MustRegister("hosted_table_data_source",
	func() DataSource { return &GemTableDataSource{} },
	docmap.Field{Attr: "table_id", Path: "table_id", Required: true},
	docmap.Field{Attr: "table_version", Path: "table_version"},
)

// Schema implements docmap.Type.
func (*GemTableDataSource) Schema() *docmap.Schema { return gemTableDataSourceSchema }

func (*GemTableDataSource) isDataSource() {}
