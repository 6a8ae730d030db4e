package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/commands/options"
	"tableflip.dev/weiwei/pkg/printers"
	"tableflip.dev/weiwei/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FeelingOptions{}
	wo := &options.WindowOptions{}
	io := &options.IDOptions{}
	limit := 0
	today := false

	cmd := &cobra.Command{
		Use:     "get",
		Aliases: []string{"list", "ls"},
		Short:   "List journal entries, newest first.",
		Example: `
weiwei get
weiwei get --last 7d --feeling stuffed
weiwei get --limit 3 --show-id
weiwei get --today
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			f, err := fo.Get()
			if err != nil {
				return output.HandleError(err)
			}
			w, err := wo.Get()
			if err != nil {
				return output.HandleError(err)
			}
			svc, _, closer, err := openApp(nil)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			s := get.Get{
				App:     svc,
				Printer: &printers.PrettyPrint{Out: cmd.OutOrStdout(), ShowID: io.ShowID},
				ID:      io.ID,
				Feeling: f,
				Window:  w,
				Today:   today,
				Limit:   limit,
			}
			if output.JSON {
				entries, err := s.Entries(cmd.Context())
				if err != nil {
					return output.HandleError(err)
				}
				return output.PrintJSON(entries)
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddFeelingArg(cmd, fo)
	options.AddWindowArg(cmd, wo, "")
	options.AddShowIDArgs(cmd, io)
	options.AddIDArgs(cmd, io)
	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many entries.")
	cmd.Flags().BoolVar(&today, "today", false, "Only show entries from today.")

	topLevel.AddCommand(cmd)
}
