// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"encoding/json"

	"github.com/lattica-ai/lattica-go/docmap"
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&dataSourceSuite{})

type dataSourceSuite struct{}

func (s *dataSourceSuite) TestCSVDataSourceNestedURL(c *check.C) {
	src := &CSVDataSource{
		FileURL:          "https://files.lattica.example/runs.csv",
		IdentifierColumn: "sample",
		ColumnTypes:      map[string]string{"density": "Real"},
	}
	doc, err := src.Schema().Dump(src)
	c.Assert(err, check.IsNil)
	u, ok := docmap.Lookup(doc, "file_link.url")
	c.Check(ok, check.Equals, true)
	c.Check(u, check.Equals, "https://files.lattica.example/runs.csv")
	tag, _ := docmap.Lookup(doc, "type")
	c.Check(tag, check.Equals, "csv_data_source")

	rebuilt, err := DataSourceTypes.Build(doc)
	c.Assert(err, check.IsNil)
	c.Check(rebuilt.(*CSVDataSource).FileURL, check.Equals, src.FileURL)
}

func (s *dataSourceSuite) TestCSVDataSourceMissingURL(c *check.C) {
	_, err := DataSourceTypes.Build(docmap.Document{"type": "csv_data_source"})
	c.Assert(err, check.FitsTypeOf, &docmap.MissingFieldError{})
	c.Check(err.(*docmap.MissingFieldError).Path, check.Equals, "file_link.url")
}

func (s *dataSourceSuite) TestDataSourceListJSON(c *check.C) {
	var l DataSourceList
	err := json.Unmarshal([]byte(`[
		{"type": "csv_data_source", "file_link": {"url": "https://x.example/a.csv"}},
		{"type": "hosted_table_data_source", "table_id": "22222222-2222-4222-8222-222222222222", "table_version": 4}
	]`), &l)
	c.Assert(err, check.IsNil)
	c.Assert(l, check.HasLen, 2)
	c.Check(l[0], check.FitsTypeOf, &CSVDataSource{})
	table := l[1].(*GemTableDataSource)
	c.Check(table.TableVersion, check.Equals, 4)
	c.Check(table.TableUID.IsZero(), check.Equals, false)
}

func (s *dataSourceSuite) TestEvaluatorDefaults(c *check.C) {
	ev, err := EvaluatorTypes.Build(docmap.Document{
		"type":      "CrossValidationEvaluator",
		"name":      "cv",
		"responses": []interface{}{"density"},
	})
	c.Assert(err, check.IsNil)
	cv := ev.(*CrossValidationEvaluator)
	c.Check(cv.NFolds, check.Equals, 5)
	c.Check(cv.NTrials, check.Equals, 3)

	// Explicit values win over defaults.
	ev, err = EvaluatorTypes.Build(docmap.Document{
		"type":      "CrossValidationEvaluator",
		"name":      "cv",
		"responses": []interface{}{"density"},
		"n_folds":   float64(10),
	})
	c.Assert(err, check.IsNil)
	c.Check(ev.(*CrossValidationEvaluator).NFolds, check.Equals, 10)
}

func (s *dataSourceSuite) TestScoreDump(c *check.C) {
	score := &MLIScore{
		Baselines: []float64{1.2},
		Objectives: ObjectiveList{
			&ScalarMaxObjective{DescriptorKey: "strength"},
		},
		Constraints: ConstraintList{
			&ScalarRangeConstraint{DescriptorKey: "density", MinInclusive: true, MaxInclusive: true},
		},
	}
	doc, err := score.Schema().Dump(score)
	c.Assert(err, check.IsNil)
	tag, _ := docmap.Lookup(doc, "type")
	c.Check(tag, check.Equals, "MLI")

	buf, err := json.Marshal(doc)
	c.Assert(err, check.IsNil)
	reparsed, err := ScoreTypes.BuildJSON(buf)
	c.Assert(err, check.IsNil)
	mli := reparsed.(*MLIScore)
	c.Check(mli.Baselines, check.DeepEquals, []float64{1.2})
	c.Assert(mli.Objectives, check.HasLen, 1)
	c.Check(mli.Objectives[0].(*ScalarMaxObjective).DescriptorKey, check.Equals, "strength")
}

func (s *dataSourceSuite) TestTableConfigRoundTrip(c *check.C) {
	config := &TableConfig{
		Name: "training table",
		Rows: RowList{
			&MaterialRunByTemplate{TemplateUIDs: []UID{MustUID("88888888-8888-4888-8888-888888888888")}},
		},
		Columns: ColumnList{
			&MeanColumn{DataSourceKey: "density", TargetUnits: "g/cm^3"},
			&StdDevColumn{DataSourceKey: "density"},
			&IdentityColumn{DataSourceKey: "sample"},
		},
	}
	doc, err := config.Schema().Dump(config)
	c.Assert(err, check.IsNil)

	var rebuilt TableConfig
	c.Assert(config.Schema().Build(doc, &rebuilt), check.IsNil)
	c.Check(rebuilt.Name, check.Equals, "training table")
	c.Assert(rebuilt.Rows, check.HasLen, 1)
	c.Assert(rebuilt.Columns, check.HasLen, 3)
	c.Check(rebuilt.Columns[0].(*MeanColumn).TargetUnits, check.Equals, "g/cm^3")
	c.Check(rebuilt.Columns[2], check.FitsTypeOf, &IdentityColumn{})
}
