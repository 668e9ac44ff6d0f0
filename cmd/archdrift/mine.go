package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archdrift/archdrift/internal/extract"
	"github.com/archdrift/archdrift/internal/progress"
	"github.com/archdrift/archdrift/internal/report"
	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/archdrift/archdrift/internal/vcs"
	"github.com/archdrift/archdrift/internal/walker"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

func mineCmd() *cli.Command {
	return &cli.Command{
		Name:      "mine",
		Aliases:   []string{"m"},
		Usage:     "Mine git history into a complexity time series (CSV)",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "frequency",
				Usage: "Sampling frequency: weekly or monthly (default from config)",
			},
			&cli.IntFlag{
				Name:    "periods",
				Aliases: []string{"n"},
				Value:   -1,
				Usage:   "Number of sampling periods (default from config)",
			},
			&cli.StringFlag{
				Name:  "csv",
				Value: "archdrift.csv",
				Usage: "Path of the CSV report to write",
			},
		},
		Action: runMineCmd,
	}
}

func runMineCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	freqFlag := c.String("frequency")
	if freqFlag == "" {
		freqFlag = cfg.History.Frequency
	}
	freq, err := walker.ParseFrequency(freqFlag)
	if err != nil {
		return err
	}

	periods := c.Int("periods")
	if periods < 0 {
		periods = cfg.History.Periods
	}

	repoPath, err := filepath.Abs(getPath(c))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	repo, err := vcs.Open(repoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}

	w := walker.New(repo, freq, periods, walker.WithBranches(cfg.History.Branches))
	snaps, err := w.Snapshots()
	if errors.Is(err, walker.ErrNoPrimaryBranch) {
		color.Yellow("No primary branch found (tried %v); nothing to mine", cfg.History.Branches)
		return nil
	}
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		color.Yellow("No commits found in the sampled date range")
		return nil
	}

	// The sink must be writable before the first checkout mutates the tree.
	sink, err := report.NewCSVSink(c.String("csv"))
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer sink.Close()

	service := filepath.Base(repoPath)
	verbose := c.Bool("verbose")
	ex := extract.New(cfg)

	bar := progress.NewBar("Mining history...", len(snaps))
	written := 0

	walkErr := w.WalkSnapshots(snaps, func(snap snapshot.Snapshot) error {
		date := snap.Date.Format("2006-01-02")
		bar.Describe(fmt.Sprintf("Snapshot %s", date))

		results := make([]*snapshot.Sets, 0, 1)
		for _, mod := range extract.ResolveModules(repoPath) {
			results = append(results, ex.Extract(mod))
		}
		sum := snapshot.Aggregate(results...)

		if verbose {
			fmt.Fprintf(os.Stdout, "\nSnapshot at %s (%s):\n", date, snap.Commit[:8])
			printSummaryLists(os.Stdout, sum)
		}

		if err := sink.Write(service, snap.Date, sum); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		written++
		bar.Tick()
		return nil
	})
	bar.Finish()
	if walkErr != nil {
		return walkErr
	}

	color.Green("Wrote %d snapshots for %s to %s", written, service, c.String("csv"))
	return nil
}
