package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"botsense/internal/analysis"
	"botsense/internal/config"
	"botsense/internal/trace"
	"botsense/internal/tracker"
)

func newScoreCmd(configPath *string) *cobra.Command {
	var (
		jsonOutput     bool
		viewportWidth  float64
		viewportHeight float64
	)

	cmd := &cobra.Command{
		Use:   "score <trace.jsonl>",
		Short: "Replay a recorded interaction trace and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			tr, err := trace.Read(f)
			if err != nil {
				return err
			}

			if viewportWidth == 0 {
				viewportWidth = tr.Header.ViewportWidth
			}
			if viewportHeight == 0 {
				viewportHeight = tr.Header.ViewportHeight
			}

			t := tracker.New(cfg.Scoring, cfg.Capacity)
			t.StartAt(tr.Header.StartMs)
			for _, s := range tr.Samples {
				t.Record(s)
			}
			t.Stop()

			report := t.Report(analysis.Viewport{Width: viewportWidth, Height: viewportHeight})

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			verdict := "clean"
			if report.Suspicious {
				verdict = "SUSPICIOUS"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "score:    %d/100 (%s)\n", report.Score, verdict)
			fmt.Fprintf(cmd.OutOrStdout(), "samples:  %d moves, %d clicks, %d keys over %dms\n",
				report.Stats.Moves, report.Stats.Clicks, report.Stats.Keys, report.Stats.DurationMs)
			for _, r := range report.Reasons {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.Flags().Float64Var(&viewportWidth, "viewport-width", 0, "viewport width (defaults to trace header)")
	cmd.Flags().Float64Var(&viewportHeight, "viewport-height", 0, "viewport height (defaults to trace header)")
	return cmd
}
