package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"multi-city-planner/internal/config"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/planner"
	"multi-city-planner/internal/transport"
)

const dateLayout = "2006-01-02"

type app struct {
	logLevel string
	log      logger.Logger
	cfg      *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "tripplan",
		Short:        "Plan multi-city trips and search transport between cities",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			a.log = logger.NewLogger(a.logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newSearchCmd(a))
	rootCmd.AddCommand(newCitiesCmd())
	return rootCmd
}

func (a *app) searcher() transport.Searcher {
	return transport.NewSearchService(transport.NewOptionGenerator(), a.log)
}

func (a *app) orchestrator() *planner.Orchestrator {
	return planner.NewOrchestrator(a.searcher(), a.log, a.cfg.PlannerConfig())
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
