package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/chainsight/chainsight/pkg/dataset"
	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/impact"
	"github.com/chainsight/chainsight/pkg/paths"
)

const usage = `chainsight - supply chain disruption analysis

Usage:
  chainsight trace    -dataset FILE -source ID[,ID...] [-upstream] [-max-depth N] [-threshold W]
  chainsight paths    -dataset FILE -from ID -to ID [-max-paths N] [-max-depth N]
  chainsight snapshot -in FILE -out FILE.csnap

Results are written to stdout as JSON.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "trace":
		err = runTrace(os.Args[2:])
	case "paths":
		err = runPaths(os.Args[2:])
	case "snapshot":
		err = runSnapshot(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func buildIndex(path string) (*graph.Index, error) {
	g, err := dataset.LoadFile(path)
	if err != nil {
		return nil, err
	}
	ix, warnings := graph.BuildIndex(g)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: edge %s: %s\n", w.EdgeID, w.Reason)
	}
	return ix, nil
}

func runTrace(args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	datasetPath := fs.String("dataset", "", "dataset file")
	source := fs.String("source", "", "comma-separated source node ids")
	upstream := fs.Bool("upstream", false, "trace upstream dependencies instead of downstream impact")
	maxDepth := fs.Int("max-depth", 0, "maximum trace depth")
	threshold := fs.Float64("threshold", 0, "ignore edges below this weight")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *datasetPath == "" || *source == "" {
		return fmt.Errorf("trace requires -dataset and -source")
	}

	ix, err := buildIndex(*datasetPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var set *impact.AffectedSet
	if *upstream {
		opts := impact.DefaultUpstreamOptions()
		applyFlags(&opts, *maxDepth, *threshold)
		set, err = impact.TraceUpstream(ctx, ix, *source, opts)
	} else {
		opts := impact.DefaultTraceOptions()
		applyFlags(&opts, *maxDepth, *threshold)
		set, err = impact.TraceDownstream(ctx, ix, strings.Split(*source, ","), opts)
	}
	if err != nil {
		return err
	}

	nodes := make([]string, 0, len(set.Nodes))
	for id := range set.Nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	return printJSON(map[string]any{
		"affectedNodes": nodes,
		"depths":        set.Depth,
		"criticalPaths": set.CriticalPaths,
		"totalImpact":   set.TotalImpact,
	})
}

func applyFlags(opts *impact.TraceOptions, maxDepth int, threshold float64) {
	if maxDepth > 0 {
		opts.MaxDepth = maxDepth
	}
	opts.WeightThreshold = threshold
}

func runPaths(args []string) error {
	fs := flag.NewFlagSet("paths", flag.ExitOnError)
	datasetPath := fs.String("dataset", "", "dataset file")
	from := fs.String("from", "", "source node id")
	to := fs.String("to", "", "target node id")
	maxPaths := fs.Int("max-paths", 0, "stop after this many paths")
	maxDepth := fs.Int("max-depth", 0, "maximum hops per path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *datasetPath == "" || *from == "" || *to == "" {
		return fmt.Errorf("paths requires -dataset, -from, and -to")
	}

	ix, err := buildIndex(*datasetPath)
	if err != nil {
		return err
	}

	result, err := paths.FindAllPaths(context.Background(), ix, *from, *to,
		paths.Options{MaxPaths: *maxPaths, MaxDepth: *maxDepth})
	if err != nil {
		return err
	}

	out := map[string]any{
		"paths":     result.Paths,
		"truncated": result.Truncated,
	}
	if shortest := paths.SelectShortest(ix, result.Paths); shortest != nil {
		out["shortest"] = shortest
		out["metrics"] = paths.Metrics(ix, shortest)
	}
	return printJSON(out)
}

func runSnapshot(args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	in := fs.String("in", "", "input dataset file")
	out := fs.String("out", "", "output snapshot file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" {
		return fmt.Errorf("snapshot requires -in and -out")
	}

	g, err := dataset.LoadFile(*in)
	if err != nil {
		return err
	}
	if err := dataset.SaveSnapshot(*out, g); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d nodes, %d edges)\n", *out, len(g.Nodes), len(g.Edges))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
