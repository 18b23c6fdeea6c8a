package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geosearch/feature"
	"github.com/hupe1980/geosearch/similarity"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <shape> <shape>",
		Short: "Print the similarity breakdown of two shapes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := feature.NewExtractor(extractorOptions)

			var fs [2]feature.Features
			for i, spec := range args {
				m, err := parseShape(spec, spec)
				if err != nil {
					return err
				}
				if fs[i], err = ext.Extract(m); err != nil {
					return err
				}
			}

			bd := similarity.Explain(&fs[0], &fs[1])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "histogram   %.4f\n", bd.Histogram)
			fmt.Fprintf(out, "volume      %.4f\n", bd.Volume)
			fmt.Fprintf(out, "area        %.4f\n", bd.Area)
			fmt.Fprintf(out, "similarity  %.4f (%d%%)\n", bd.Similarity, bd.Score())
			return nil
		},
	}
}
