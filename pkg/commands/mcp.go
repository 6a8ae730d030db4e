package commands

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	r := mcp.Runner{}
	transport := string(mcp.TransportStdio)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the journal to MCP clients.",
		Long: `Launch a Model Context Protocol server exposing meal planning, the feelings
journal and the weekly report as tools and resources. stdio is the default,
for clients that start weiwei themselves.`,
		Example: `
weiwei mcp
weiwei mcp --transport http --addr 127.0.0.1:0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// stdout carries the stdio protocol, so logs go to stderr.
			svc, _, closer, err := openApp(os.Stderr)
			if err != nil {
				return err
			}
			defer closer()

			r.App = svc
			r.Transport = mcp.Transport(strings.ToLower(strings.TrimSpace(transport)))
			r.Logger = log.New(cmd.ErrOrStderr(), "weiwei mcp: ", log.LstdFlags)
			r.OnListening = func(a net.Addr) {
				scheme := "http"
				if r.TLSCert != "" {
					scheme = "https"
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s://%s%s\n", scheme, a, r.Path)
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", transport, "Transport to use: stdio or http.")
	cmd.Flags().StringVar(&r.Addr, "addr", mcp.DefaultAddr, "Listen address for the http transport (port 0 picks one).")
	cmd.Flags().StringVar(&r.Path, "path", mcp.DefaultPath, "Endpoint path for the http transport.")
	cmd.Flags().StringVar(&r.TLSCert, "tls-cert", "", "TLS certificate file for the http transport.")
	cmd.Flags().StringVar(&r.TLSKey, "tls-key", "", "TLS private key file for the http transport.")

	topLevel.AddCommand(cmd)
}
