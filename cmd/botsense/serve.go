package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"botsense/internal/config"
	"botsense/internal/intake"
	"botsense/internal/logging"
	"botsense/internal/store"
)

func newServeCmd(configPath *string) *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the event intake collector",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if listenAddr != "" {
				cfg.Intake.ListenAddr = listenAddr
			}

			log, err := logging.New(logging.Options{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				Output:    cfg.Logging.Output,
				FilePath:  cfg.Logging.FilePath,
				Component: "intake",
			})
			if err != nil {
				return err
			}

			var st *store.Store
			if cfg.Storage.DatabasePath != "" {
				st, err = store.Open(cfg.Storage.DatabasePath)
				if err != nil {
					return fmt.Errorf("open submission archive: %w", err)
				}
				defer st.Close()
			}

			srv := intake.NewServer(cfg, intake.Sink(st), log)
			defer srv.Close()

			// Scoring thresholds are tunable at runtime: edits to the
			// config file apply to newly created sessions.
			if *configPath != "" {
				stop, err := config.Watch(*configPath, func(next *config.Config) {
					srv.UpdateScoring(next.Scoring, next.Capacity)
				}, func(err error) {
					log.Warn("config reload failed", "error", err)
				})
				if err != nil {
					log.Warn("config watch unavailable", "error", err)
				} else {
					defer stop()
				}
			}

			return srv.ListenAndServe(cfg.Intake.ListenAddr)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen", "", "override listen address")
	return cmd
}
