// Command geosearch indexes generated mesh primitives and prints similarity
// rankings. It is a demo and benchmark harness for the geosearch package.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/geosearch"
	"github.com/hupe1980/geosearch/feature"
)

var (
	topK       int
	workers    int
	logLevel   string
	scale      float64
	centroidOn bool
)

var rootCmd = &cobra.Command{
	Use:   "geosearch",
	Short: "Shape similarity search over 3D meshes",
	Long: `A command-line harness for the geosearch shape index.

Shapes are given as <kind>:<size>, for example cube:2, box:1x2x3 or sphere:50.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&topK, "top-k", "k", geosearch.DefaultTopK, "Maximum number of results")
	pf.IntVar(&workers, "workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); empty disables logging")
	pf.Float64Var(&scale, "scale", feature.DefaultScale, "Histogram distance scale")
	pf.BoolVar(&centroidOn, "centroid-origin", false, "Measure histogram distances from the centroid")

	rootCmd.AddCommand(newDemoCmd(), newSearchCmd(), newCompareCmd())
}

// extractorOptions maps the persistent flags onto feature options.
func extractorOptions(o *feature.Options) {
	o.Scale = scale
	if centroidOn {
		o.Origin = feature.OriginCentroid
	}
}

func newIndex(extra ...geosearch.Option) (*geosearch.Index, error) {
	opts := []geosearch.Option{
		geosearch.WithWorkers(workers),
		geosearch.WithExtractorOptions(extractorOptions),
	}

	if logLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		opts = append(opts, geosearch.WithLogLevel(level))
	}

	return geosearch.New(append(opts, extra...)...), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
