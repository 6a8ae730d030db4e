package commands

import (
	"io"
	"log"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/commands/options"
	"tableflip.dev/weiwei/pkg/config"
)

var (
	output = &options.OutputOptions{}
	co     = &options.ConfigOptions{}
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weiwei",
		Short: base.Wrap80("胃胃: portion planning, a feelings journal and a calm-down corner for your stomach."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddConfigArgs(cmd, co)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addPlan(topLevel)
	addLog(topLevel)
	addGet(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addCalm(topLevel)
	addClear(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addPick(topLevel)
}

// openApp loads configuration and wires the app. Gateway logging goes to
// stderr with --verbose and is discarded otherwise.
func openApp(logTo io.Writer) (*app.Service, *config.Config, func() error, error) {
	cfg, err := co.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if logTo == nil {
		logTo = io.Discard
		if co.Verbose {
			logTo = os.Stderr
		}
	}
	svc, closer, err := app.Open(cfg, log.New(logTo, "weiwei: ", log.LstdFlags))
	if err != nil {
		return nil, nil, nil, err
	}
	return svc, cfg, closer, nil
}
