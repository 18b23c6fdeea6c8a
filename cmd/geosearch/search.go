package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query> <shape>...",
		Short: "Rank the given shapes by similarity to the query shape",
		Long: `Index every <shape> argument and print the top-k most similar to <query>.

Example:
  geosearch search cube:2 cube:1 cube:4 sphere:1 box:1x2x3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			query, err := parseShape("query", args[0])
			if err != nil {
				return err
			}

			idx, err := newIndex()
			if err != nil {
				return err
			}

			for i, spec := range args[1:] {
				m, err := parseShape(strconv.Itoa(i+1), spec)
				if err != nil {
					return err
				}
				m.Name = spec
				if err := idx.IndexModel(ctx, m); err != nil {
					return err
				}
			}

			results, err := idx.Search(ctx, query, topK)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), results)
		},
	}
}
