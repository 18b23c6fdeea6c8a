package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/hupe1980/geosearch"
)

func printResults(w io.Writer, results []geosearch.SearchResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no results")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tFORMAT\tSIMILARITY\tSCORE")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.4f\t%d%%\n",
			i+1, r.ID, r.Model.Name, r.Model.Format, r.Similarity, r.Score)
	}
	return tw.Flush()
}

func printStats(w io.Writer, s geosearch.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "models\t%d\n", s.Models)
	fmt.Fprintf(tw, "vertices\t%d\n", s.Vertices)
	fmt.Fprintf(tw, "triangles\t%d\n", s.Triangles)
	fmt.Fprintf(tw, "histogram bins\t%d\n", s.HistogramBins)
	fmt.Fprintf(tw, "scale\t%g\n", s.Extractor.Scale)
	fmt.Fprintf(tw, "origin\t%s\n", s.Extractor.Origin)
	for format, n := range s.Formats {
		fmt.Fprintf(tw, "format %s\t%d\n", format, n)
	}
	return tw.Flush()
}
