package commands

import (
	"io"

	"github.com/spf13/cobra"

	teaui "tableflip.dev/weiwei/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ui",
		Aliases: []string{"tui"},
		Short:   "Open the full-screen planner, journal and calm-down corner.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			// The alt screen owns the terminal, so gateway logs are dropped.
			svc, _, closer, err := openApp(io.Discard)
			if err != nil {
				return err
			}
			defer closer()

			s := teaui.Tea{App: svc}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
