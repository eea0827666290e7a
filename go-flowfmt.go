package main

import (
	"os"

	logging "github.com/op/go-logging"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("flowfmt")

var cli = &cobra.Command{
	Use:           "flowfmt",
	Short:         "Render flow records as text.",
	Long:          "flowfmt renders decoded flow records as formatted text lines.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func main() {
	if err := cli.Execute(); err != nil {
		log.Error(err)
		closeLog()
		os.Exit(1)
	}
}
