package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hancock",
		Short:         "Prepare, send and inspect signature envelopes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", "", "Load environment variables from this file first")
	rootCmd.PersistentFlags().StringVarP(&ctx.output, "output", "o", outputAuto, "Output format: auto, json or table")

	rootCmd.AddCommand(newSubmitCommand(ctx, actionSave))
	rootCmd.AddCommand(newSubmitCommand(ctx, actionSend))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newCallbacksCommand(ctx))

	return rootCmd
}
