package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/snake"
)

func addPick(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a command and its flags interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			root := cmd.Root()
			argv, err := snake.Walk(root, snake.PromptUI{}, func(c *cobra.Command) bool {
				switch c.Name() {
				case "pick", "help", "completion", "mcp":
					return true
				}
				return false
			})
			if err != nil {
				return err
			}
			_, _ = color.New(color.Faint).Fprintf(cmd.ErrOrStderr(), "%s %s\n", root.Name(), strings.Join(argv, " "))

			target, rest, err := root.Find(argv)
			if err != nil {
				return err
			}
			if err := target.ParseFlags(rest); err != nil {
				return err
			}
			if target.RunE == nil {
				return fmt.Errorf("%s is not runnable", target.CommandPath())
			}
			target.SetContext(cmd.Context())
			return target.RunE(target, target.Flags().Args())
		},
	}

	topLevel.AddCommand(cmd)
}
