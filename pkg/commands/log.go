package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/feeling"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	food := ""

	long := strings.Builder{}
	long.WriteString("Record how a meal felt.\n\nFeelings:\n")
	validArgs := make([]string, 0, 6)
	for _, f := range feeling.All() {
		long.WriteString(fmt.Sprintf("%s %s: %s, %s\n", f.Key(), f.Symbol(), f.Label(), strings.ToLower(string(f))))
		validArgs = append(validArgs, strings.ToLower(string(f)))
	}

	cmd := &cobra.Command{
		Use:   "log <feeling>",
		Short: "Record how a meal felt.",
		Long:  long.String(),
		Example: `
weiwei log great --food "蔬菜沙拉"
weiwei log 3 --food 火锅
weiwei log full
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f, err := feeling.Parse(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			if output.JSON {
				e, err := svc.Log(cmd.Context(), f, food)
				if err != nil {
					return output.HandleError(err)
				}
				return output.PrintJSON(e)
			}
			s := log.Log{
				App:     svc,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout()},
				Feeling: f,
				Food:    food,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&food, "food", "", "What you ate. Empty records it as unrecorded.")

	topLevel.AddCommand(cmd)
}
