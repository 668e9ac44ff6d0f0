package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/archdrift/archdrift/internal/extract"
	"github.com/archdrift/archdrift/internal/output"
	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/urfave/cli/v2"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Aliases:   []string{"s"},
		Usage:     "Extract complexity signals from the working tree as-is",
		ArgsUsage: "[path]",
		Action:    runScanCmd,
	}
}

func runScanCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	repoPath, err := filepath.Abs(getPath(c))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	ex := extract.New(cfg)
	modules := extract.ResolveModules(repoPath)

	results := make([]*snapshot.Sets, 0, len(modules))
	for _, mod := range modules {
		results = append(results, ex.Extract(mod))
	}
	sum := snapshot.Aggregate(results...)

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		fmt.Sprintf("Architecture Complexity: %s", filepath.Base(repoPath)),
		[]string{"Signal", "Count"},
		[][]string{
			{"Endpoints", strconv.Itoa(sum.EndpointCount())},
			{"Inter-Service Communications", strconv.Itoa(sum.CallCount())},
			{"Dependencies", strconv.Itoa(sum.DependencyCount())},
		},
		[]string{"Modules", strconv.Itoa(len(modules))},
		sum,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if c.Bool("verbose") && formatter.Format() == output.FormatText {
		printSummaryLists(formatter.Writer(), sum)
	}

	return nil
}
