package cli

import (
	"github.com/spf13/cobra"

	"github.com/uciweb/ddnsadmin/internal/tui"
)

func newTUICmd() *cobra.Command {
	var opts servicesOptions
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse DDNS services interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveServicesDir(opts.cfgPath, opts.servicesDir)
			if err != nil {
				return err
			}
			return tui.Run(dir)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&opts.cfgPath, "config", "c", defaultConfigPath, "config yaml path")
	fs.StringVar(&opts.servicesDir, "services-dir", "", "services dir path (overrides config services.dir)")
	return cmd
}
