/*
This contains a renderer for decoded network flow records.

Overview

Flow records are read from a source, rendered with a compiled format, and written as text lines:

	source -> (compile) -> render -> output

source is a record source, which must provide decoded flow records. For examples look at
modules/sources.

compile is a fixed step that turns the format into a plan before any record is read. A format
is either the name of a predefined format (line, long, extended, biline, nsel, ...) or a string
containing tokens like %ts or %sap. Unknown tokens abort the run before any output is written.

render executes the plan once per record. Fields that don't exist in the dialect of a record
are printed as 0 (numbers) or - (text).

Example usage

	flowfmt render -o long source jsonl flows.jsonl
	flowfmt render -o "fmt:%ts %pr %sap -> %dap %byt" -N -m dual source jsonl a.jsonl.zst -- source jsonl b.jsonl

Available tokens and formats can be listed with "flowfmt tokens" and "flowfmt formats", sources
and their options with "flowfmt sources [source]".

Configuration

Every flag can also be provided via environment variables prefixed with FLOWFMT_ (e.g.
FLOWFMT_FORMAT=long) or in a yaml configuration file given with --config. Additional named
formats can be loaded from a yaml file with --formats:

	flows:
	  format: "%ts %td %sap -> %dap %pkt %byt"
	  epilog: summary

Contents

 * flows: record model, information elements, and record sources
 * output: token table, format compiler, renderer, header and summary lines
 * resolve: protocol names and country codes
 * modules: record sources
 * logger: log setup
 * util: module registry
*/
package main
