package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geosearch"
	"github.com/hupe1980/geosearch/testutil"
)

type demoCommander struct {
	count         int
	seed          int64
	query         string
	format        string
	minSimilarity float64
	rateLimit     float64
}

func newDemoCmd() *cobra.Command {
	cmder := &demoCommander{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Index a random catalog of primitives and query it",
		Long: `Generate a random catalog of cubes, boxes and spheres, index it with a
batch load and print the most similar models to the query shape.

Example:
  geosearch demo --count 5000 --query sphere:40 --top-k 5
  geosearch demo --format stl --min-similarity 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&cmder.count, "count", "n", 1000, "Number of catalog models")
	f.Int64Var(&cmder.seed, "seed", 1, "Random seed for the catalog")
	f.StringVarP(&cmder.query, "query", "q", "cube:20", "Query shape")
	f.StringVar(&cmder.format, "format", "", "Only rank models of this format")
	f.Float64Var(&cmder.minSimilarity, "min-similarity", 0, "Drop results below this similarity")
	f.Float64Var(&cmder.rateLimit, "rate-limit", 0, "Index at most this many models per second (0 = unlimited)")

	return cmd
}

func (c *demoCommander) run(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	query, err := parseShape("query", c.query)
	if err != nil {
		return err
	}

	metrics := &geosearch.BasicMetricsCollector{}
	idx, err := newIndex(
		geosearch.WithMetricsCollector(metrics),
		geosearch.WithIndexRateLimit(c.rateLimit, max(1, int(c.rateLimit))),
	)
	if err != nil {
		return err
	}

	catalog := testutil.NewRNG(c.seed).Catalog(c.count)

	start := time.Now()
	res := idx.IndexBatch(ctx, catalog)
	if err := res.Err(); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}
	indexed := time.Since(start)

	results, err := idx.Query(query).
		TopK(topK).
		Format(c.format).
		MinSimilarity(c.minSimilarity).
		Execute(ctx)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "indexed %d models in %s\n\n", len(res.IDs), indexed.Round(time.Millisecond))
	if err := printResults(out, results); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := printStats(out, idx.Stats()); err != nil {
		return err
	}

	m := metrics.GetStats()
	fmt.Fprintf(out, "\nsearch: %d candidates in %s\n", m.SearchCandidates, time.Duration(m.SearchAvgNanos))
	return nil
}
