package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"botsense/internal/config"
	"botsense/internal/store"
)

func newHistoryCmd(configPath *string) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if cfg.Storage.DatabasePath == "" {
				return fmt.Errorf("no submission archive configured")
			}

			st, err := store.Open(cfg.Storage.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			subs, err := st.ListSubmissions(limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(subs)
			}

			suspicious, clean, err := st.VerdictCounts()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d archived (%d suspicious, %d clean)\n\n",
				suspicious+clean, suspicious, clean)

			for _, sub := range subs {
				verdict := "clean"
				if sub.Suspicious {
					verdict = "SUSPICIOUS"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %3d/100  %-10s  %s\n",
					sub.CreatedAt.Format(time.RFC3339),
					sub.SessionID,
					sub.Score,
					verdict,
					strings.Join(sub.Reasons, "; "))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum submissions to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output JSON")
	return cmd
}
