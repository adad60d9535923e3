// Command pingcap inspects and exports frame captures.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"golang.org/x/exp/slices"
)

type command struct {
	Name  string
	Usage string
	Help  string
	Flags *flag.FlagSet
	Run   func(self *command) error
}

func (cmd *command) printUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s %s [arguments] %s\n\n", exe, cmd.Name, cmd.Usage)
	fmt.Fprintf(os.Stderr, "%s.\n\nThe arguments are:\n\n", cmd.Help)
	cmd.Flags.SetOutput(os.Stderr)
	cmd.Flags.PrintDefaults()
}

func printCommands(commands []*command) {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [arguments]\n\nThe commands are:\n\n", exe)
	tw := tabwriter.NewWriter(os.Stderr, 0, 4, 4, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "    %s\t%s\n", c.Name, c.Help)
	}
	tw.Flush()
	fmt.Fprintln(os.Stderr)
}

// errUsage makes main print the usage of the failed command.
var errUsage = errors.New("invalid arguments")

func main() {
	commands := []*command{createInfoCommand(), createPngCommand()}
	slices.SortFunc(commands, func(a, b *command) int {
		return strings.Compare(a.Name, b.Name)
	})

	if len(os.Args) < 2 {
		printCommands(commands)
		os.Exit(2)
	}
	i := slices.IndexFunc(commands, func(c *command) bool {
		return strings.EqualFold(c.Name, os.Args[1])
	})
	if i < 0 {
		printCommands(commands)
		os.Exit(2)
	}

	cmd := commands[i]
	if err := cmd.Flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	switch err := cmd.Run(cmd); {
	case errors.Is(err, errUsage):
		cmd.printUsage()
		os.Exit(2)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func closeQuietly(closer io.Closer) {
	closer.Close()
}
