package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/weiwei/pkg/feeling"
)

// FeelingOptions
type FeelingOptions struct {
	Feeling string
}

func AddFeelingArg(cmd *cobra.Command, o *FeelingOptions) {
	names := make([]string, 0, 3)
	for _, f := range feeling.All() {
		names = append(names, string(f))
	}
	cmd.Flags().StringVar(&o.Feeling, "feeling", "",
		"Only show one feeling, one of "+strings.Join(names, ", ")+".")
}

// Get returns the selected feeling, or empty when unset.
func (o *FeelingOptions) Get() (feeling.Feeling, error) {
	if o.Feeling == "" {
		return "", nil
	}
	return feeling.Parse(o.Feeling)
}
