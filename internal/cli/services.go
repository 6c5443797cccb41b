package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uciweb/ddnsadmin/pkg/config"
	"github.com/uciweb/ddnsadmin/pkg/uci"
	"github.com/uciweb/ddnsadmin/pkg/urlparse"
)

type servicesOptions struct {
	cfgPath     string
	servicesDir string
}

func newServicesCmd() *cobra.Command {
	var opts servicesOptions
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Inspect DDNS service sections from UCI config files",
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.cfgPath, "config", "c", defaultConfigPath, "config yaml path")
	pf.StringVar(&opts.servicesDir, "services-dir", "", "services dir path (overrides config services.dir)")
	cmd.AddCommand(newServicesListCmd(&opts), newServicesShowCmd(&opts))
	return cmd
}

func newServicesListCmd(opts *servicesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List loaded DDNS services",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadServicesRegistry(*opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range reg.ListServiceNames() {
				svc, ok := reg.GetService(name)
				if !ok {
					continue
				}
				_, _ = fmt.Fprintf(out, "service=%s enabled=%v lookup_host=%s\n",
					svc.Name, svc.Enabled(), valueOrDash(svc.Section.Get("lookup_host")))
			}
			return nil
		},
	}
}

func newServicesShowCmd(opts *servicesOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one service section with its update URL decomposed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadServicesRegistry(*opts)
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[0])
			svc, ok := reg.GetService(name)
			if !ok {
				return fmt.Errorf("service %q not found", name)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "service=%s file=%s enabled=%v\n", svc.Name, svc.Path, svc.Enabled())

			keys := make([]string, 0, len(svc.Section.Options))
			for k := range svc.Section.Options {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				_, _ = fmt.Fprintf(out, "option %s=%q\n", k, svc.Section.Options[k])
			}
			listKeys := make([]string, 0, len(svc.Section.Lists))
			for k := range svc.Section.Lists {
				listKeys = append(listKeys, k)
			}
			sort.Strings(listKeys)
			for _, k := range listKeys {
				for _, v := range svc.Section.Lists[k] {
					_, _ = fmt.Fprintf(out, "list %s=%q\n", k, v)
				}
			}

			if raw := strings.TrimSpace(svc.Section.Get("update_url")); raw != "" {
				u := urlparse.Decompose(raw)
				_, _ = fmt.Fprintf(out, "update_url scheme=%s host=%s port=%s path=%s\n",
					deref(u.Scheme), deref(u.Host), deref(u.Port), u.Path)
			}
			return nil
		},
	}
}

func loadServicesRegistry(opts servicesOptions) (*uci.Registry, error) {
	dir, err := resolveServicesDir(opts.cfgPath, opts.servicesDir)
	if err != nil {
		return nil, err
	}
	reg := uci.NewRegistry()
	if _, err := reg.ReloadFromDir(dir); err != nil {
		return nil, fmt.Errorf("load services dir %q: %w", dir, err)
	}
	return reg, nil
}

func resolveServicesDir(cfgPath, override string) (string, error) {
	if dir := strings.TrimSpace(override); dir != "" {
		return dir, nil
	}
	cfg, err := config.LoadIfExists(strings.TrimSpace(cfgPath))
	if err != nil {
		return "", fmt.Errorf("load config %q: %w", cfgPath, err)
	}
	if cfg != nil && strings.TrimSpace(cfg.Services.Dir) != "" {
		return strings.TrimSpace(cfg.Services.Dir), nil
	}
	return "/etc/config", nil
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func deref(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
