package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the feeling legend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := key.Key{}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
