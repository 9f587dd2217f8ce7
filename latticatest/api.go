// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package latticatest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/julienschmidt/httprouter"
)

// Doc is a raw JSON object as served by the stub API.
type Doc = map[string]interface{}

// APIStub is a fake Lattica API server covering the endpoints the SDK
// exercises in tests: project CRUD and listing, module/workflow
// collections with scripted validation status transitions, and
// workflow execution status/candidates. Listings page through the
// stored slices with integer page tokens.
//
// Modules and workflows share one store keyed by collection kind
// ("predictors", "design-spaces", "design-workflows", ...), matching
// their identical envelope shape.
//
// Use it via httptest.NewServer(stub.Router()).
type APIStub struct {
	// Per-page ceiling imposed by the "backend" regardless of the
	// client's per_page (0 = no ceiling).
	MaxPerPage int

	mtx        sync.Mutex
	projects   []Doc
	modules    map[string][]Doc    // key: {pid}/{kind}
	statuses   map[string][]string // scripted status sequences, by module id
	executions map[string][]Doc    // by workflow id
	execStatus map[string][]Doc    // scripted status snapshots, by execution id
	candidates map[string][]Doc    // by execution id
}

// AddProject stores a project document.
func (s *APIStub) AddProject(doc Doc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.projects = append(s.projects, doc)
}

// AddModule stores a module (or workflow) document under the given
// project and collection kind.
func (s *APIStub) AddModule(pid, kind string, doc Doc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.modules == nil {
		s.modules = map[string][]Doc{}
	}
	key := pid + "/" + kind
	s.modules[key] = append(s.modules[key], doc)
}

// ScriptStatuses arranges for successive fetches of the module with
// the given id to report the given statuses in order; the last status
// repeats once the script runs out.
func (s *APIStub) ScriptStatuses(moduleID string, statuses ...string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.statuses == nil {
		s.statuses = map[string][]string{}
	}
	s.statuses[moduleID] = statuses
}

// AddExecution stores an execution document under the given workflow
// id.
func (s *APIStub) AddExecution(workflowID string, doc Doc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.executions == nil {
		s.executions = map[string][]Doc{}
	}
	s.executions[workflowID] = append(s.executions[workflowID], doc)
}

// ScriptExecutionStatus arranges for successive status fetches of the
// execution with the given id to return the given snapshots in order;
// the last snapshot repeats once the script runs out.
func (s *APIStub) ScriptExecutionStatus(execID string, snapshots ...Doc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.execStatus == nil {
		s.execStatus = map[string][]Doc{}
	}
	s.execStatus[execID] = snapshots
}

// AddCandidate stores a design candidate document under the given
// execution id.
func (s *APIStub) AddCandidate(execID string, doc Doc) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.candidates == nil {
		s.candidates = map[string][]Doc{}
	}
	s.candidates[execID] = append(s.candidates[execID], doc)
}

// Router returns the stub's http handler.
func (s *APIStub) Router() http.Handler {
	r := httprouter.New()
	r.GET("/v1/projects", s.list(func(httprouter.Params) []Doc { return s.projects }))
	r.POST("/v1/projects", s.createProject)
	r.GET("/v1/projects/:pid", s.getProject)
	r.GET("/v1/projects/:pid/:kind", s.list(func(ps httprouter.Params) []Doc {
		return s.modules[ps.ByName("pid")+"/"+ps.ByName("kind")]
	}))
	r.POST("/v1/projects/:pid/:kind", s.createModule)
	r.GET("/v1/projects/:pid/:kind/:uid", s.getModule)
	r.GET("/v1/projects/:pid/:kind/:uid/executions", s.list(func(ps httprouter.Params) []Doc {
		return s.executions[ps.ByName("uid")]
	}))
	r.POST("/v1/projects/:pid/:kind/:uid/executions", s.createExecution)
	r.GET("/v1/projects/:pid/:kind/:uid/executions/:eid", s.getExecution)
	r.GET("/v1/projects/:pid/:kind/:uid/executions/:eid/status", s.executionStatus)
	r.GET("/v1/projects/:pid/:kind/:uid/executions/:eid/candidates", s.list(func(ps httprouter.Params) []Doc {
		return s.candidates[ps.ByName("eid")]
	}))
	return r
}

func (s *APIStub) createProject(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	var doc Doc
	if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
		http.Error(w, `{"errors":["bad request body"]}`, 400)
		return
	}
	if doc["uid"] == nil {
		doc["uid"] = newStubUID()
	}
	doc["status"] = "CREATED"
	s.AddProject(doc)
	writeJSON(w, Doc{"project": doc})
}

func (s *APIStub) getProject(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for _, doc := range s.projects {
		if doc["uid"] == ps.ByName("pid") {
			writeJSON(w, Doc{"project": doc})
			return
		}
	}
	http.Error(w, `{"errors":["no such project"]}`, 404)
}

func (s *APIStub) createModule(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	var doc Doc
	if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
		http.Error(w, `{"errors":["bad request body"]}`, 400)
		return
	}
	if doc["id"] == nil {
		doc["id"] = newStubUID()
	}
	doc["status"] = "CREATED"
	s.AddModule(ps.ByName("pid"), ps.ByName("kind"), doc)
	writeJSON(w, doc)
}

func (s *APIStub) getModule(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	key := ps.ByName("pid") + "/" + ps.ByName("kind")
	for _, doc := range s.modules[key] {
		if doc["id"] != ps.ByName("uid") {
			continue
		}
		out := Doc{}
		for k, v := range doc {
			out[k] = v
		}
		if script := s.statuses[ps.ByName("uid")]; len(script) > 0 {
			out["status"] = script[0]
			if len(script) > 1 {
				s.statuses[ps.ByName("uid")] = script[1:]
			}
		}
		writeJSON(w, out)
		return
	}
	http.Error(w, `{"errors":["no such module"]}`, 404)
}

func (s *APIStub) createExecution(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	var doc Doc
	if err := json.NewDecoder(req.Body).Decode(&doc); err != nil {
		http.Error(w, `{"errors":["bad request body"]}`, 400)
		return
	}
	exec := Doc{"id": newStubUID(), "workflow_id": ps.ByName("uid")}
	s.AddExecution(ps.ByName("uid"), exec)
	writeJSON(w, exec)
}

func (s *APIStub) getExecution(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for _, doc := range s.executions[ps.ByName("uid")] {
		if doc["id"] == ps.ByName("eid") {
			writeJSON(w, doc)
			return
		}
	}
	http.Error(w, `{"errors":["no such execution"]}`, 404)
}

func (s *APIStub) executionStatus(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	script := s.execStatus[ps.ByName("eid")]
	if len(script) == 0 {
		http.Error(w, `{"errors":["no such execution"]}`, 404)
		return
	}
	snapshot := script[0]
	if len(script) > 1 {
		s.execStatus[ps.ByName("eid")] = script[1:]
	}
	writeJSON(w, snapshot)
}

// list returns a paged listing handler over the documents returned by
// get.
func (s *APIStub) list(get func(httprouter.Params) []Doc) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		s.mtx.Lock()
		defer s.mtx.Unlock()
		docs := get(ps)
		perPage, _ := strconv.Atoi(req.FormValue("per_page"))
		if perPage <= 0 {
			perPage = 20
		}
		if s.MaxPerPage > 0 && perPage > s.MaxPerPage {
			perPage = s.MaxPerPage
		}
		offset, _ := strconv.Atoi(req.FormValue("page_token"))
		if offset < 0 || offset > len(docs) {
			offset = len(docs)
		}
		end := offset + perPage
		if end > len(docs) {
			end = len(docs)
		}
		next := ""
		if end < len(docs) {
			next = strconv.Itoa(end)
		}
		entries := docs[offset:end]
		if entries == nil {
			entries = []Doc{}
		}
		writeJSON(w, Doc{"entries": entries, "next": next})
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
