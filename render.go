package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CN-TU/go-flowfmt/flows"
	"github.com/CN-TU/go-flowfmt/output"
	"github.com/CN-TU/go-flowfmt/resolve"
)

var renderCommand = &cobra.Command{
	Use:   "render [flags] [source <type> [args] [--]] [...]",
	Short: "Render flow records",
	Long: `Read flow records from the given sources and write one formatted line per record.

If multiple sources are specified, those are queried in order. Without sources,
json lines are read from stdin. The options of a source can be queried with
"flowfmt sources <type>".

The format can be the name of a format (see "flowfmt formats") or a format string
containing tokens (see "flowfmt tokens"), e.g. "%ts %pr %sap -> %dap %byt".`,
	Example: `  flowfmt render -o long source jsonl flows.jsonl.zst
  flowfmt render -o "fmt:%ts %sa -> %da %byt" -N source jsonl a.jsonl b.jsonl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadRenderConfig()
		if err != nil {
			return err
		}
		return runRender(conf, args)
	},
}

func init() {
	flags := renderCommand.Flags()
	flags.SetInterspersed(false)

	flags.StringP("format", "o", "", fmt.Sprintf("Output format (default %s, or %s with --geo-db)", output.DefaultFormat, output.DefaultGeoFormat))
	viper.BindPFlag("format", flags.Lookup("format"))

	flags.BoolP("plain", "N", false, "Print plain numbers")
	viper.BindPFlag("plain", flags.Lookup("plain"))

	flags.StringP("mode", "m", output.ModeV4.String(), "Addressing mode (v4|v6|dual)")
	viper.BindPFlag("mode", flags.Lookup("mode"))

	flags.BoolP("long-v6", "6", false, "Print full IPv6 addresses (same as --mode v6)")
	viper.BindPFlag("long-v6", flags.Lookup("long-v6"))

	flags.BoolP("quiet", "q", false, "Don't print header and summary")
	viper.BindPFlag("quiet", flags.Lookup("quiet"))

	flags.String("geo-db", "", "Csv file with cidr,country lines for country codes")
	viper.BindPFlag("geo-db", flags.Lookup("geo-db"))

	flags.StringP("output", "w", "-", "Output file")
	viper.BindPFlag("output", flags.Lookup("output"))

	flags.Bool("flush", false, "Flush output after every record")
	viper.BindPFlag("flush", flags.Lookup("flush"))

	flags.String("timezone", "Local", "Time zone of timestamps")
	viper.BindPFlag("timezone", flags.Lookup("timezone"))

	cli.AddCommand(renderCommand)
}

func parseSources(args []string) (*flows.Sources, error) {
	sources := &flows.Sources{}
	for len(args) > 0 {
		switch args[0] {
		case "source":
			if len(args) < 2 {
				return nil, errors.New("source needs a type")
			}
			which := args[1]
			var source flows.Source
			var err error
			args, source, err = flows.MakeSource(which, args[2:])
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", which, err)
			}
			if err := source.Init(); err != nil {
				return nil, fmt.Errorf("source %s: %w", which, err)
			}
			sources.Append(source)
		case "--":
			args = args[1:]
		default:
			return nil, fmt.Errorf("unknown verb %s", args[0])
		}
	}
	if sources.Len() == 0 {
		_, source, err := flows.MakeSource("jsonl", []string{"-"})
		if err != nil {
			return nil, err
		}
		sources.Append(source)
	}
	return sources, nil
}

func newContext(conf *renderConfig) (*output.Context, error) {
	ctx := output.NewContext(conf.mode)
	ctx.Location = conf.location
	ctx.Quiet = conf.quiet
	if conf.geoDB != "" {
		geo, err := resolve.LoadGeoTable(conf.geoDB, resolve.DefaultCacheSize)
		if err != nil {
			return nil, err
		}
		log.Infof("loaded %d networks from %s", geo.Len(), conf.geoDB)
		ctx.Geo = geo
	}
	return ctx, nil
}

func runRender(conf *renderConfig, args []string) error {
	format := conf.format
	if format == "" && conf.geoDB != "" {
		format = output.DefaultGeoFormat
	}
	// a broken format must fail before any source is opened
	plan, err := output.Compile(format, conf.plain)
	if err != nil {
		return err
	}

	ctx, err := newContext(conf)
	if err != nil {
		return err
	}

	sources, err := parseSources(args)
	if err != nil {
		return err
	}
	defer sources.Stop()

	var out io.Writer = os.Stdout
	if conf.output != "" && conf.output != "-" {
		f, err := os.Create(conf.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return renderRecords(out, plan, ctx, sources, conf.flush)
}

type recordReader interface {
	ReadRecord() (flows.Record, error)
}

func renderRecords(out io.Writer, plan *output.Plan, ctx *output.Context, records recordReader, flush bool) error {
	w := output.NewWriter(out, plan, ctx)
	w.SetFlush(flush)
	if err := w.Begin(); err != nil {
		return err
	}
	for {
		rec, err := records.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	if err := w.Finish(); err != nil {
		return err
	}
	sum := w.Summary()
	log.Infof("rendered %d records", sum.Records)
	return nil
}
