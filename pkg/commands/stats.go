package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count entries per feeling.",
		Example: `
weiwei stats
weiwei stats --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			if output.JSON {
				c, err := svc.Stats(cmd.Context())
				if err != nil {
					return output.HandleError(err)
				}
				return output.PrintJSON(c)
			}
			s := stats.Stats{
				App:     svc,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
