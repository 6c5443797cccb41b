// Package cli wires the ddnsadmin command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "ddnsadmin.yaml"

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ddnsadmin",
		Short:         "DDNS administration toolbox for router web UIs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newServeCmd(),
		newURLCmd(),
		newCheckCmd(),
		newServicesCmd(),
		newReloadCmd(),
		newTUICmd(),
		newVersionCmd(),
	)
	return cmd
}

func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
