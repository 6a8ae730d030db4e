package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/commands/options"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	showStats := false

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Ask the nutritionist for a weekly summary of your journal.",
		Example: `
weiwei report
weiwei report --last 30d --stats
weiwei report --last 1w
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			w, err := wo.Get()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			if output.JSON {
				res, err := svc.Report(cmd.Context(), w)
				if err != nil {
					return output.HandleError(err)
				}
				return output.PrintJSON(map[string]any{
					"window":  res.Window.String(),
					"entries": len(res.Entries),
					"counts":  res.Counts,
					"report":  res.Text,
				})
			}
			s := report.Report{
				App:     svc,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
				Window:  w,
				Stats:   showStats,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddWindowArg(cmd, wo, "")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Also print per-feeling counts for the window.")

	topLevel.AddCommand(cmd)
}
