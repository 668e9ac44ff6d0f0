package main

import (
	"fmt"
	"io"

	"github.com/archdrift/archdrift/internal/config"
	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/urfave/cli/v2"
)

// getPath returns the repository path from the first positional arg,
// defaulting to ".".
func getPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

// loadConfig loads the config named by --config, or probes standard
// locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
		return cfg, nil
	}
	return config.LoadOrDefault(), nil
}

// printSummaryLists writes the sorted endpoint, call and dependency lists
// for one snapshot, matching the layout of the CSV row contents.
func printSummaryLists(w io.Writer, sum *snapshot.Summary) {
	fmt.Fprintf(w, "  Endpoints: %d\n", sum.EndpointCount())
	for _, ep := range sum.Endpoints {
		fmt.Fprintf(w, "    - %s\n", ep)
	}
	fmt.Fprintf(w, "  Inter-Service Communications: %d\n", sum.CallCount())
	for _, call := range sum.Calls {
		fmt.Fprintf(w, "    - %s\n", call)
	}
	fmt.Fprintf(w, "  Dependencies: %d\n", sum.DependencyCount())
	for _, dep := range sum.Dependencies {
		fmt.Fprintf(w, "    - %s\n", dep)
	}
}
