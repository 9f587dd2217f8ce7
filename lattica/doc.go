// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package lattica is a client for the Lattica materials-informatics
// platform API. A Client carries the endpoint and credentials; typed
// resources hang off its collections:
//
//	client, err := lattica.NewClientFromConfig(cfg)
//	...
//	proj, err := client.Projects().Get(ctx, uid)
//	err = proj.Predictors().Each(ctx, func(p lattica.Predictor) error {
//		...
//	})
//
// Listings paginate transparently (see Pager); long-running backend
// work (module validation, workflow executions) is polled via the wait
// package using the fresh-snapshot status accessors here.
package lattica
