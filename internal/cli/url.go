package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uciweb/ddnsadmin/pkg/urlparse"
)

func newURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Decompose and reassemble URLs the way the web UI does",
	}
	cmd.AddCommand(newURLDecomposeCmd(), newURLFormatCmd())
	return cmd
}

func newURLDecomposeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "decompose <url>",
		Short: "Split a URL into its RFC 2396 parts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := urlparse.Decompose(args[0])
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(u)
			}
			printOpt(out, "scheme", u.Scheme)
			printOpt(out, "authority", u.Authority)
			printOpt(out, "userinfo", u.Userinfo)
			printOpt(out, "user", u.User)
			printOpt(out, "password", u.Password)
			printOpt(out, "host", u.Host)
			printOpt(out, "port", u.Port)
			_, _ = fmt.Fprintf(out, "path=%q\n", u.Path)
			printOpt(out, "params", u.Params)
			printOpt(out, "query", u.Query)
			printOpt(out, "fragment", u.Fragment)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

type urlFormatOptions struct {
	scheme   string
	user     string
	password string
	host     string
	port     string
	path     string
	params   string
	query    string
	fragment string
}

func newURLFormatCmd() *cobra.Command {
	var opts urlFormatOptions
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Assemble a URL from its parts",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := urlparse.URL{Path: opts.path}
			fs := cmd.Flags()
			setOpt(&u.Scheme, fs.Changed("scheme"), opts.scheme)
			setOpt(&u.User, fs.Changed("user"), opts.user)
			setOpt(&u.Password, fs.Changed("password"), opts.password)
			setOpt(&u.Host, fs.Changed("host"), opts.host)
			setOpt(&u.Port, fs.Changed("port"), opts.port)
			setOpt(&u.Params, fs.Changed("params"), opts.params)
			setOpt(&u.Query, fs.Changed("query"), opts.query)
			setOpt(&u.Fragment, fs.Changed("fragment"), opts.fragment)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), urlparse.Format(u))
			return nil
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.scheme, "scheme", "", "scheme part")
	fs.StringVar(&opts.user, "user", "", "user part")
	fs.StringVar(&opts.password, "password", "", "password part")
	fs.StringVar(&opts.host, "host", "", "host part")
	fs.StringVar(&opts.port, "port", "", "port part")
	fs.StringVar(&opts.path, "path", "", "path part")
	fs.StringVar(&opts.params, "params", "", "params part")
	fs.StringVar(&opts.query, "query", "", "query part")
	fs.StringVar(&opts.fragment, "fragment", "", "fragment part")
	return cmd
}

func printOpt(out io.Writer, name string, v *string) {
	if v == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s=%q\n", name, *v)
}

func setOpt(dst **string, changed bool, v string) {
	if !changed {
		return
	}
	val := v
	*dst = &val
}
