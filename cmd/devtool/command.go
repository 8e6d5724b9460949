package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

const (
	envStaging    = "staging"
	envProduction = "production"
)

// Command is a devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// commandSet indexes subcommands by name
type commandSet map[string]Command

func newCommandSet(cmds ...Command) commandSet {
	set := make(commandSet, len(cmds))
	for _, c := range cmds {
		set[c.Name()] = c
	}
	return set
}

func (s commandSet) lookup(name string) (Command, bool) {
	c, ok := s[name]
	return c, ok
}

func (s commandSet) names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s commandSet) usage(w io.Writer) {
	fmt.Fprintln(w, "usage: devtool <command> [args...]")
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range s.names() {
		fmt.Fprintf(tw, "  %s\t%s\n", name, s[name].Description())
	}
	tw.Flush()
}
