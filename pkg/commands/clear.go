package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/runner/purge"
)

func addClear(topLevel *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every journal entry.",
		Example: `
weiwei clear
weiwei clear --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			s := purge.Purge{
				App: svc,
				Yes: yes,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation.")

	topLevel.AddCommand(cmd)
}
