package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/logger"
)

const app = "resumectl"

// Actual version can be specified in build command.
var version = "unknown"

type rootOptions struct {
	debug bool
	json  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "resumectl analyses résumés and manages the similarity index",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.json, "json", "j", false, "json format for logging")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newIndexCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration and a logger writing to stderr, keeping
// stdout for command output.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, envFile := config.Load()

	log, err := logger.New(o.json, o.debug, "stderr")
	if err != nil {
		return nil, nil, err
	}
	log.Debug("config loaded", zap.Bool("env_file", envFile))
	return cfg, log, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}
