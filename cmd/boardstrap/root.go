package main

import (
	"github.com/spf13/cobra"

	"github.com/tessellate-ai/boardstrap/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newSetupCmd())
	cmd.AddCommand(newDoctorCmd())
	return cmd
}
