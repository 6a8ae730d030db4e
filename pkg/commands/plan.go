package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/runner/plan"
)

func addPlan(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "plan <food>",
		Short: "Suggest portions for what you want to eat.",
		Example: `
weiwei plan 番茄炒蛋和米饭
weiwei plan "一碗牛肉面"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			if output.JSON {
				p, err := svc.Analyze(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return output.HandleError(err)
				}
				return output.PrintJSON(p)
			}
			s := plan.Plan{
				App:     svc,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
				Food:    strings.Join(args, " "),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	topLevel.AddCommand(cmd)
}
