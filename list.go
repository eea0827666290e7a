package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/CN-TU/go-flowfmt/output"
)

func init() {
	cli.AddCommand(&cobra.Command{
		Use:   "tokens",
		Short: "List available format tokens",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			listTokens(os.Stdout)
		},
	})
	cli.AddCommand(&cobra.Command{
		Use:   "formats",
		Short: "List available named formats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			listFormats(os.Stdout)
		},
	})
}

func listTokens(w io.Writer) {
	t := tabwriter.NewWriter(w, 3, 4, 2, ' ', 0)
	fmt.Fprintln(t, "Token\tTitle\tDescription\tInformation elements\tDialects")
	for _, tok := range output.Tokens() {
		ies := make([]string, len(tok.Elements))
		for i, ie := range tok.Elements {
			ies[i] = ie.Name
		}
		dialects := make([]string, 0, 3)
		for _, d := range tok.Dialects() {
			dialects = append(dialects, d.String())
		}
		fmt.Fprintf(t, "%c%s\t%s\t%s\t%s\t%s\n", output.Escape, tok.Name, tok.Title, tok.Description, strings.Join(ies, ","), strings.Join(dialects, ","))
	}
	t.Flush()
}

func listFormats(w io.Writer) {
	t := tabwriter.NewWriter(w, 3, 4, 2, ' ', 0)
	fmt.Fprintln(t, "Name\tEpilog\tDescription\tFormat")
	for _, l := range output.Layouts() {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", l.Name, l.Epilog, l.Description, l.Format)
	}
	t.Flush()
	fmt.Fprintf(w, "\nDefault format: %s, with country codes: %s\n", output.DefaultFormat, output.DefaultGeoFormat)
}
