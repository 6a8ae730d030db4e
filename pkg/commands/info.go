package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about configuration and where the journal is stored.",
		Example: `
weiwei info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			s := info.Info{
				Config: cfg,
				App:    svc,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
