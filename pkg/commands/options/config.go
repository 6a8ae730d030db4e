package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/config"
)

// ConfigOptions
type ConfigOptions struct {
	Dir     string
	Verbose bool
}

func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.Dir, "config", "",
		"Directory holding .env and .weiwei.yaml.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log gateway calls to stderr.")
}

func (o *ConfigOptions) Load() (*config.Config, error) {
	if o.Dir != "" {
		return config.LoadDir(o.Dir)
	}
	return config.Load()
}
