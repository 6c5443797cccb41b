package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uciweb/ddnsadmin/pkg/ddnsenv"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Probe the environment for DDNS helper programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := ddnsenv.Check(ddnsenv.Deps{})
			out := cmd.OutOrStdout()
			for _, p := range rep.Programs {
				if p.Found {
					_, _ = fmt.Fprintf(out, "program=%s found=yes path=%s\n", p.Name, p.Path)
					continue
				}
				_, _ = fmt.Fprintf(out, "program=%s found=no\n", p.Name)
			}
			_, _ = fmt.Fprintf(out, "https_support=%v\n", rep.HTTPSSupport)
			_, _ = fmt.Fprintf(out, "dns_lookup=%v\n", rep.DNSLookup)
			return nil
		},
	}
}
