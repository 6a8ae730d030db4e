package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/runner/breathe"
	"tableflip.dev/weiwei/pkg/runner/quiz"
)

func addCalm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "calm",
		Short: "Calm down before reaching for a snack.",
		Long: `Calm down before reaching for a snack.

The full-screen ui also has the bubble popping game.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	addBreathe(cmd)
	addQuiz(cmd)

	topLevel.AddCommand(cmd)
}

func addBreathe(topLevel *cobra.Command) {
	rounds := 1

	cmd := &cobra.Command{
		Use:   "breathe",
		Short: "Guided 4-7-8 breathing.",
		Example: `
weiwei calm breathe
weiwei calm breathe --rounds 3
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := breathe.Breathe{
				Rounds: rounds,
				Out:    cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 1, "Number of breathing cycles.")

	topLevel.AddCommand(cmd)
}

func addQuiz(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "ask",
		Aliases: []string{"quiz"},
		Short:   "Ask yourself whether you are really hungry.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := quiz.Quiz{
				Out: cmd.OutOrStdout(),
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
