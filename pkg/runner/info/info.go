// Package info reports where weiwei reads its configuration and data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/weiwei/pkg/app"
	"tableflip.dev/weiwei/pkg/config"
)

type Info struct {
	Config *config.Config
	App    *app.Service
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("WEIWEI_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "WEIWEI_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(out, "WEIWEI_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Config.path:  ", n.Config.BasePath())
	fmt.Fprintln(out, "Config.driver:", n.Config.Driver)
	if n.Config.HasCredential() {
		fmt.Fprintf(out, "Gateway:       live (%s, timeout %s)\n", n.Config.Model, n.Config.Timeout)
	} else {
		fmt.Fprintln(out, "Gateway:       mock (no API key configured)")
	}

	if n.App == nil {
		return fmt.Errorf("failed to open the journal")
	}
	entries, err := n.App.Entries(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Entries:       %d\n", len(entries))
	return nil
}
