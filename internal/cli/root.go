package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/pagewin/pkg/log"
	"github.com/macropower/pagewin/pkg/version"
)

const (
	cmdName = "pagewin"
	cmdDesc = `Pick an item from a list through a fixed-height scrolling window.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", "Log level, one of: "+strings.Join(log.AllLevels, ", "))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", "Log format, one of: "+strings.Join(log.AllFormats, ", "))

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	cmd := &cobra.Command{
		Use:               cmdName + " [file|-]",
		Short:             cmdDesc,
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging(args),
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, posArgs []string) error {
			if len(posArgs) > 0 {
				runArgs.Path = posArgs[0]
			}

			return run(cmd, runArgs)
		},
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)

	cmd.AddCommand(
		NewSimulateCmd(args),
		NewSchemaCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		h, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), ra.LogLevel, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(h)
		slog.SetDefault(logger)
		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		logger.Debug("starting", slog.String("build", version.Info()))

		return nil
	}
}
