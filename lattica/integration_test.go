// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package lattica

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/lattica-ai/lattica-go/latticatest"
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&integrationSuite{})

// integrationSuite runs the SDK against a stub API server.
type integrationSuite struct {
	stub   *latticatest.APIStub
	server *httptest.Server
	client *Client
	ctx    context.Context
}

func (s *integrationSuite) SetUpTest(c *check.C) {
	s.stub = &latticatest.APIStub{}
	s.server = httptest.NewServer(s.stub.Router())
	s.client = &Client{
		Scheme:    "http",
		APIHost:   s.server.Listener.Addr().String(),
		AuthToken: "testtoken",
	}
	s.ctx = context.Background()
}

func (s *integrationSuite) TearDownTest(c *check.C) {
	s.server.Close()
}

func (s *integrationSuite) TestProjectLifecycle(c *check.C) {
	created, err := s.client.Projects().Create(s.ctx, &Project{
		Name:        "alloy screening",
		Description: "test project",
	})
	c.Assert(err, check.IsNil)
	c.Check(created.UID.IsZero(), check.Equals, false)
	c.Check(created.Name, check.Equals, "alloy screening")
	c.Check(created.Status, check.Equals, "CREATED")

	got, err := s.client.Projects().Get(s.ctx, created.UID)
	c.Assert(err, check.IsNil)
	c.Check(got.UID, check.Equals, created.UID)
	c.Check(got.Description, check.Equals, "test project")
}

func (s *integrationSuite) TestProjectGetNotFound(c *check.C) {
	_, err := s.client.Projects().Get(s.ctx, NewUID())
	te, ok := err.(*TransactionError)
	c.Assert(ok, check.Equals, true, check.Commentf("%#v", err))
	c.Check(te.StatusCode, check.Equals, 404)
}

func (s *integrationSuite) TestProjectListPaged(c *check.C) {
	s.stub.MaxPerPage = 2
	for i := 0; i < 5; i++ {
		s.stub.AddProject(latticatest.Doc{
			"uid":  fmt.Sprintf("00000000-0000-4000-8000-00000000000%d", i),
			"name": fmt.Sprintf("project %d", i),
		})
	}
	projects, err := s.client.Projects().List(s.ctx)
	c.Assert(err, check.IsNil)
	c.Assert(projects, check.HasLen, 5)
	for i, p := range projects {
		c.Check(p.Name, check.Equals, fmt.Sprintf("project %d", i))
	}
}

func (s *integrationSuite) TestProjectEachStop(c *check.C) {
	for i := 0; i < 4; i++ {
		s.stub.AddProject(latticatest.Doc{
			"uid":  fmt.Sprintf("00000000-0000-4000-8000-00000000000%d", i),
			"name": "p",
		})
	}
	n := 0
	err := s.client.Projects().Each(s.ctx, func(*Project) error {
		n++
		if n == 2 {
			return ErrStop
		}
		return nil
	})
	c.Check(err, check.IsNil)
	c.Check(n, check.Equals, 2)
}

func (s *integrationSuite) TestPredictorRegisterAndGet(c *check.C) {
	s.stub.AddProject(latticatest.SampleProject())
	proj, err := s.client.Projects().Get(s.ctx, MustUID(latticatest.ProjectUID))
	c.Assert(err, check.IsNil)

	created, err := proj.Predictors().Register(s.ctx, &SimpleMLPredictor{
		Name:    "density model",
		Inputs:  []string{"chem formula"},
		Outputs: []string{"density"},
	})
	c.Assert(err, check.IsNil)
	c.Check(created.ModuleUID().IsZero(), check.Equals, false)
	c.Check(created.CurrentStatus(), check.Equals, ModuleStatusCreated)

	got, err := proj.Predictors().Get(s.ctx, created.ModuleUID())
	c.Assert(err, check.IsNil)
	simple, ok := got.(*SimpleMLPredictor)
	c.Assert(ok, check.Equals, true, check.Commentf("%#v", got))
	c.Check(simple.Name, check.Equals, "density model")
	c.Check(simple.Inputs, check.DeepEquals, []string{"chem formula"})
}

func (s *integrationSuite) TestPredictorPolymorphicList(c *check.C) {
	s.stub.AddProject(latticatest.SampleProject())
	s.stub.AddModule(latticatest.ProjectUID, "predictors", latticatest.SamplePredictor())
	s.stub.AddModule(latticatest.ProjectUID, "predictors", latticatest.Doc{
		"id":          "99999999-9999-4999-8999-999999999999",
		"module_type": "PREDICTOR",
		"status":      "READY",
		"config": latticatest.Doc{
			"type":       "Expression",
			"name":       "shear modulus",
			"expression": "E / (2 * (1 + v))",
			"output":     "shear",
		},
	})
	proj, err := s.client.Projects().Get(s.ctx, MustUID(latticatest.ProjectUID))
	c.Assert(err, check.IsNil)
	predictors, err := proj.Predictors().List(s.ctx)
	c.Assert(err, check.IsNil)
	c.Assert(predictors, check.HasLen, 2)
	c.Check(predictors[0], check.FitsTypeOf, &SimpleMLPredictor{})
	expr, ok := predictors[1].(*ExpressionPredictor)
	c.Assert(ok, check.Equals, true)
	c.Check(expr.Expression, check.Equals, "E / (2 * (1 + v))")
}

func (s *integrationSuite) TestModuleStatusScript(c *check.C) {
	s.stub.AddProject(latticatest.SampleProject())
	s.stub.AddModule(latticatest.ProjectUID, "predictors", latticatest.SamplePredictor())
	s.stub.ScriptStatuses(latticatest.PredictorUID, "VALIDATING", "VALIDATING", "READY")

	proj, err := s.client.Projects().Get(s.ctx, MustUID(latticatest.ProjectUID))
	c.Assert(err, check.IsNil)
	ref := proj.Predictors().StatusRef(MustUID(latticatest.PredictorUID))
	for _, expected := range []ModuleStatus{
		ModuleStatusValidating, ModuleStatusValidating, ModuleStatusReady, ModuleStatusReady,
	} {
		st, err := ref.Status(s.ctx)
		c.Assert(err, check.IsNil)
		c.Check(st, check.Equals, expected)
	}
}

func (s *integrationSuite) TestWorkflowExecution(c *check.C) {
	s.stub.AddProject(latticatest.SampleProject())
	s.stub.AddModule(latticatest.ProjectUID, "design-workflows", latticatest.Doc{
		"id":     latticatest.WorkflowUID,
		"name":   "design run",
		"status": "READY",
		"config": latticatest.Doc{
			"design_space_id": "66666666-6666-4666-8666-666666666666",
			"predictor_id":    latticatest.PredictorUID,
		},
	})
	s.stub.AddExecution(latticatest.WorkflowUID, latticatest.Doc{
		"id":          latticatest.ExecutionUID,
		"workflow_id": latticatest.WorkflowUID,
	})
	s.stub.ScriptExecutionStatus(latticatest.ExecutionUID,
		latticatest.Doc{"status": "INPROGRESS", "in_progress": true},
		latticatest.Doc{"status": "SUCCEEDED", "in_progress": false},
	)
	s.stub.AddCandidate(latticatest.ExecutionUID, latticatest.Doc{
		"uid":           "77777777-7777-4777-8777-777777777777",
		"primary_score": 0.93,
		"material": latticatest.Doc{
			"name": "candidate alloy",
		},
	})

	proj, err := s.client.Projects().Get(s.ctx, MustUID(latticatest.ProjectUID))
	c.Assert(err, check.IsNil)
	wf, err := proj.Workflows().Get(s.ctx, MustUID(latticatest.WorkflowUID))
	c.Assert(err, check.IsNil)
	c.Check(wf.PredictorID, check.Equals, MustUID(latticatest.PredictorUID))

	executions, err := wf.Executions().List(s.ctx)
	c.Assert(err, check.IsNil)
	c.Assert(executions, check.HasLen, 1)
	exec := executions[0]
	c.Check(exec.WorkflowID, check.Equals, wf.UID)

	st, err := exec.Status(s.ctx)
	c.Assert(err, check.IsNil)
	c.Check(st.Status, check.Equals, ExecutionStatusInProgress)
	c.Check(st.InProgress, check.Equals, true)
	st, err = exec.Status(s.ctx)
	c.Assert(err, check.IsNil)
	c.Check(st.Status, check.Equals, ExecutionStatusSucceeded)

	var names []string
	err = exec.Candidates(s.ctx, func(cand *DesignCandidate) error {
		names = append(names, cand.MaterialName)
		c.Check(cand.PrimaryScore, check.Equals, 0.93)
		return nil
	})
	c.Assert(err, check.IsNil)
	c.Check(names, check.DeepEquals, []string{"candidate alloy"})
}

func (s *integrationSuite) TestWorkflowArchive(c *check.C) {
	path := "/v1/projects/" + latticatest.ProjectUID + "/design-workflows/" + latticatest.WorkflowUID + "/archive"
	stub := &latticatest.StubTransport{Responses: map[string]string{path: `{}`}}
	client := &Client{
		Client:  &http.Client{Transport: stub},
		APIHost: "lattica.example.com",
	}
	wc := &WorkflowCollection{client: client, projectID: MustUID(latticatest.ProjectUID)}
	c.Assert(wc.Archive(s.ctx, MustUID(latticatest.WorkflowUID)), check.IsNil)
	c.Assert(stub.Requests, check.HasLen, 1)
	c.Check(stub.Requests[0].Method, check.Equals, "PUT")
	c.Check(stub.Requests[0].URL.Path, check.Equals, path)
}
