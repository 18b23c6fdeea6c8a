// Package testutil provides testing utilities for geosearch.
//
// This package is intended for use in tests, benchmarks and the demo command.
// It provides helpers for generating random primitive meshes, computing exact
// rankings and verifying search recall.
//
// # Random Catalogs
//
//	rng := testutil.NewRNG(seed)
//	models := rng.Catalog(1000)
//
// # Exact Ranking (Ground Truth)
//
//	truth := testutil.BruteForceSearch(features, query, queryID, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(truth, results)
package testutil
