package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/uciweb/ddnsadmin/internal/adminserver"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the DDNS admin HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminserver.Run(strings.TrimSpace(cfgPath))
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "config yaml path")
	return cmd
}
