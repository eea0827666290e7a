package main

import (
	"bytes"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CN-TU/go-flowfmt/flows"
	"github.com/CN-TU/go-flowfmt/util"
)

type moduleDefinition struct {
	name, arghelp string
	help          func(string) error
	list          func() ([]util.ModuleDescription, error)
}

var modules = []moduleDefinition{
	{
		"source", "List available record sources and options",
		flows.SourceHelp,
		flows.ListSources,
	},
}

func init() {
	for _, def := range modules {
		def := def
		cli.AddCommand(&cobra.Command{
			Use:   fmt.Sprintf("%ss [%s]", def.name, def.name),
			Short: def.arghelp,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 1 {
					return def.help(args[0])
				}

				descs, err := def.list()
				if err != nil {
					fmt.Fprintf(os.Stderr, "No %ss registered.\n", def.name)
					return nil
				}
				fmt.Fprintf(os.Stderr, "List of %ss:\n\n", def.name)

				t := tabwriter.NewWriter(os.Stderr, 3, 4, 5, ' ', 0)
				for _, desc := range descs {
					line := new(bytes.Buffer)
					fmt.Fprintf(line, "%s\t%s\n", desc.Name(), desc.Description())
					t.Write(line.Bytes())
				}
				t.Flush()

				fmt.Fprintf(os.Stderr, "\nTo query the options of a %s use:\n%s %ss <%s>\n", def.name, os.Args[0], def.name, def.name)
				return nil
			},
		})
	}
}
