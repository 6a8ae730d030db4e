// Package snake walks a cobra command tree interactively and builds the
// argument list for the command the user picks.
package snake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Continue is the last flag choice; picking it ends flag prompting.
const Continue = "Continue..."

// Prompter asks the questions. PromptUI is the terminal implementation.
type Prompter interface {
	Select(label string, items []string) (int, error)
	Input(label, def string, validate func(string) error) (string, error)
}

// Skip reports whether a command should be hidden from the picker.
type Skip func(*cobra.Command) bool

// Walk prompts from root down to a runnable command, then for its positional
// argument and flags, and returns the argument list that runs it.
func Walk(root *cobra.Command, p Prompter, skip Skip) ([]string, error) {
	var argv []string
	cmd := root
	for {
		subs := choices(cmd, skip)
		if len(subs) == 0 {
			break
		}
		items := make([]string, 0, len(subs))
		for _, s := range subs {
			items = append(items, fmt.Sprintf("%-8s %s", s.Name(), s.Short))
		}
		i, err := p.Select(cmd.Name(), items)
		if err != nil {
			return nil, err
		}
		cmd = subs[i]
		argv = append(argv, cmd.Name())
	}

	if arg := positional(cmd.Use); arg != "" {
		v, err := p.Input(arg, "", func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", arg)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		argv = append(argv, v)
	}

	flags, err := promptFlags(cmd, p)
	if err != nil {
		return nil, err
	}
	return append(argv, flags...), nil
}

func choices(cmd *cobra.Command, skip Skip) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmd.Commands() {
		if !c.IsAvailableCommand() || (skip != nil && skip(c)) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// positional returns the first <name> placeholder in a Use line.
func positional(use string) string {
	start := strings.Index(use, "<")
	end := strings.Index(use, ">")
	if start < 0 || end <= start+1 {
		return ""
	}
	return use[start+1 : end]
}

func promptFlags(cmd *cobra.Command, p Prompter) ([]string, error) {
	var fs []*pflag.Flag
	cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		switch f.Value.Type() {
		case "bool", "string", "int":
			fs = append(fs, f)
		}
	})
	if len(fs) == 0 {
		return nil, nil
	}

	items := make([]string, 0, len(fs)+1)
	for _, f := range fs {
		items = append(items, fmt.Sprintf("%s  %s", asFlag(f), f.Usage))
	}
	items = append(items, Continue)

	var out []string
	for {
		i, err := p.Select("flags", items)
		if err != nil {
			return nil, err
		}
		if i == len(fs) {
			return out, nil
		}
		f := fs[i]
		v, err := p.Input(fmt.Sprintf("--%s [%s]", f.Name, f.DefValue), f.DefValue, validator(f))
		if err != nil {
			return nil, err
		}
		if v == "" {
			v = f.DefValue
		}
		if f.Value.Type() == "bool" {
			b, _ := ParseBool(v)
			v = strconv.FormatBool(b)
		}
		out = append(out, fmt.Sprintf("--%s=%s", f.Name, v))
	}
}

func validator(f *pflag.Flag) func(string) error {
	switch f.Value.Type() {
	case "bool":
		return func(s string) error {
			if s == "" {
				return nil
			}
			_, err := ParseBool(s)
			return err
		}
	case "int":
		return func(s string) error {
			if s == "" {
				return nil
			}
			_, err := strconv.Atoi(s)
			return err
		}
	}
	return func(string) error { return nil }
}

func asFlag(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return fmt.Sprintf("--%s, -%s", f.Name, f.Shorthand)
	}
	return fmt.Sprintf("--%s", f.Name)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
