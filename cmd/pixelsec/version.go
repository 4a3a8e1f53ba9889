package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(env.stdout, "pixelsec %s (commit: %s)\n", version, commit)
		},
	}
}
