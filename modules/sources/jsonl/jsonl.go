package jsonl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	logging "github.com/op/go-logging"
	"github.com/spf13/pflag"
	"github.com/valyala/fastjson"

	"github.com/CN-TU/go-flowfmt/flows"
	"github.com/CN-TU/go-flowfmt/util"
)

var log = logging.MustGetLogger("jsonl")

const (
	// dialectKey selects the record dialect. Without it records containing firewall events are
	// nsel records, records containing nat events nel records.
	dialectKey = "dialect"
	maxLine    = 1024 * 1024
)

type setter func(r *flows.FlowRecord, v *fastjson.Value) error

func unsigned(bits uint, set func(r *flows.FlowRecord, n uint64)) setter {
	return func(r *flows.FlowRecord, v *fastjson.Value) error {
		n, err := v.Uint64()
		if err != nil {
			return err
		}
		if bits < 64 && n >= 1<<bits {
			return fmt.Errorf("value %d out of range", n)
		}
		set(r, n)
		return nil
	}
}

func address(set func(r *flows.FlowRecord, ip net.IP)) setter {
	return func(r *flows.FlowRecord, v *fastjson.Value) error {
		b, err := v.StringBytes()
		if err != nil {
			return err
		}
		ip := net.ParseIP(string(b))
		if ip == nil {
			return fmt.Errorf("invalid address %q", b)
		}
		set(r, ip)
		return nil
	}
}

// timestamp accepts milliseconds since the epoch or RFC 3339 strings
func timestamp(set func(r *flows.FlowRecord, t flows.DateTimeMilliseconds)) setter {
	return func(r *flows.FlowRecord, v *fastjson.Value) error {
		if v.Type() == fastjson.TypeString {
			t, err := time.Parse(time.RFC3339Nano, string(v.GetStringBytes()))
			if err != nil {
				return err
			}
			set(r, flows.FromTime(t))
			return nil
		}
		n, err := v.Uint64()
		if err != nil {
			return err
		}
		set(r, flows.DateTimeMilliseconds(n))
		return nil
	}
}

var setters = make(map[string]setter)

func register(set setter, names ...string) {
	for _, name := range names {
		setters[name] = set
	}
}

func variant(name string) []string {
	v := flows.Variants[name]
	return []string{name, v[0].Name, v[1].Name}
}

func init() {
	register(timestamp(func(r *flows.FlowRecord, t flows.DateTimeMilliseconds) { r.Start = t }), flows.IEFlowStartMilliseconds.Name)
	register(timestamp(func(r *flows.FlowRecord, t flows.DateTimeMilliseconds) { r.End = t }), flows.IEFlowEndMilliseconds.Name)
	register(timestamp(func(r *flows.FlowRecord, t flows.DateTimeMilliseconds) { r.Recv = t }), flows.IECollectionTimeMilliseconds.Name)

	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.Proto = uint8(n) }), flows.IEProtocolIdentifier.Name)
	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.SrcTos = uint8(n) }), flows.IEIPClassOfService.Name)
	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.DstTos = uint8(n) }), flows.IEPostIPClassOfService.Name)
	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.Flags = uint8(n) }), flows.IETCPControlBits.Name)
	register(unsigned(16, func(r *flows.FlowRecord, n uint64) { r.SrcPort = uint16(n) }), flows.IESourceTransportPort.Name)
	register(unsigned(16, func(r *flows.FlowRecord, n uint64) { r.DstPort = uint16(n) }), flows.IEDestinationTransportPort.Name)
	register(unsigned(32, func(r *flows.FlowRecord, n uint64) { r.SrcAS = uint32(n) }), flows.IEBgpSourceAsNumber.Name)
	register(unsigned(32, func(r *flows.FlowRecord, n uint64) { r.DstAS = uint32(n) }), flows.IEBgpDestinationAsNumber.Name)
	register(unsigned(32, func(r *flows.FlowRecord, n uint64) { r.Input = uint32(n) }), flows.IEIngressInterface.Name)
	register(unsigned(32, func(r *flows.FlowRecord, n uint64) { r.Output = uint32(n) }), flows.IEEgressInterface.Name)

	register(unsigned(64, func(r *flows.FlowRecord, n uint64) { r.InOctets = n }), flows.IEOctetDeltaCount.Name)
	register(unsigned(64, func(r *flows.FlowRecord, n uint64) { r.InPkts = n }), flows.IEPacketDeltaCount.Name)
	register(unsigned(64, func(r *flows.FlowRecord, n uint64) { r.OutOctets = n }), flows.IEPostOctetDeltaCount.Name)
	register(unsigned(64, func(r *flows.FlowRecord, n uint64) { r.OutPkts = n }), flows.IEPostPacketDeltaCount.Name)
	register(unsigned(64, func(r *flows.FlowRecord, n uint64) { r.FlowCount = n }), flows.IEDeltaFlowCount.Name)

	register(address(func(r *flows.FlowRecord, ip net.IP) { r.SrcAddr = ip }), variant(flows.SourceIPAddress)...)
	register(address(func(r *flows.FlowRecord, ip net.IP) { r.DstAddr = ip }), variant(flows.DestinationIPAddress)...)
	register(address(func(r *flows.FlowRecord, ip net.IP) { r.Router = ip }), variant(flows.ExporterIPAddress)...)
	register(address(func(r *flows.FlowRecord, ip net.IP) { r.Hop = ip }), variant(flows.IPNextHopIPAddress)...)
	register(address(func(r *flows.FlowRecord, ip net.IP) { r.XSrcAddr = ip }), variant(flows.PostNATSourceIPAddress)...)
	register(address(func(r *flows.FlowRecord, ip net.IP) { r.XDstAddr = ip }), variant(flows.PostNATDestinationIPAddress)...)
	register(unsigned(16, func(r *flows.FlowRecord, n uint64) { r.XSrcPort = uint16(n) }), flows.IEPostNAPTSourceTransportPort.Name)
	register(unsigned(16, func(r *flows.FlowRecord, n uint64) { r.XDstPort = uint16(n) }), flows.IEPostNAPTDestinationTransportPort.Name)

	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.FwEvent = uint8(n) }), flows.IEFirewallEvent.Name)
	register(unsigned(16, func(r *flows.FlowRecord, n uint64) { r.FwXEvent = uint16(n) }), flows.IEFwExtEvent.Name)
	register(unsigned(8, func(r *flows.FlowRecord, n uint64) { r.NatEvent = uint8(n) }), flows.IENatEvent.Name)

	flows.RegisterSource("jsonl", "Read records from newline delimited json files.", newJSONLSource, jsonlHelp)
}

// decode fills r from the json object v
func decode(r *flows.FlowRecord, v *fastjson.Value, dialect flows.RecordTag) error {
	obj, err := v.Object()
	if err != nil {
		return err
	}
	*r = flows.FlowRecord{Dialect: dialect, FlowCount: 1}
	explicit := false
	var ferr error
	obj.Visit(func(key []byte, v *fastjson.Value) {
		if ferr != nil {
			return
		}
		k := string(key)
		if k == dialectKey {
			b, err := v.StringBytes()
			if err != nil {
				ferr = fmt.Errorf("%s: %w", k, err)
				return
			}
			if r.Dialect, err = flows.ParseRecordTag(string(b)); err != nil {
				ferr = err
				return
			}
			explicit = true
			return
		}
		set, ok := setters[k]
		if !ok {
			return
		}
		if err := set(r, v); err != nil {
			ferr = fmt.Errorf("%s: %w", k, err)
		}
	})
	if ferr != nil {
		return ferr
	}
	if !explicit && dialect == flows.TagGeneric {
		switch {
		case obj.Get(flows.IEFirewallEvent.Name) != nil:
			r.Dialect = flows.TagNSEL
		case obj.Get(flows.IENatEvent.Name) != nil:
			r.Dialect = flows.TagNEL
		}
	}
	return nil
}

type jsonlSource struct {
	id      string
	files   []string
	dialect flows.RecordTag
	file    io.Closer
	decoder *zstd.Decoder
	scanner *bufio.Scanner
	parser  fastjson.Parser
	name    string
	line    int
	skipped int
	record  flows.FlowRecord
	stopped bool
}

func (s *jsonlSource) ID() string {
	return s.id
}

func (s *jsonlSource) Init() error {
	for _, fn := range s.files {
		if fn == "-" {
			continue
		}
		if _, err := os.Stat(fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *jsonlSource) close() {
	if s.decoder != nil {
		s.decoder.Close()
		s.decoder = nil
	}
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}
	s.scanner = nil
}

func (s *jsonlSource) open() error {
	s.close()
	var fn string
	fn, s.files = s.files[0], s.files[1:]
	var r io.Reader
	if fn == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(fn)
		if err != nil {
			return err
		}
		s.file = f
		r = f
	}
	if strings.HasSuffix(fn, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			s.close()
			return fmt.Errorf("%s: %w", fn, err)
		}
		s.decoder = dec
		r = dec
	}
	s.scanner = bufio.NewScanner(r)
	s.scanner.Buffer(make([]byte, 64*1024), maxLine)
	s.name = fn
	s.line = 0
	log.Debugf("reading records from %s", fn)
	return nil
}

// ReadRecord returns the next record. The returned record is reused by the next call.
func (s *jsonlSource) ReadRecord() (flows.Record, error) {
	for {
		if s.stopped {
			return nil, io.EOF
		}
		if s.scanner == nil {
			if len(s.files) == 0 {
				return nil, io.EOF
			}
			if err := s.open(); err != nil {
				return nil, err
			}
		}
		if !s.scanner.Scan() {
			err := s.scanner.Err()
			name := s.name
			s.close()
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", name, s.line+1, err)
			}
			continue
		}
		s.line++
		line := s.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		v, err := s.parser.ParseBytes(line)
		if err == nil {
			err = decode(&s.record, v, s.dialect)
		}
		if err != nil {
			s.skipped++
			log.Warningf("%s:%d: skipping record: %s", s.name, s.line, err)
			continue
		}
		return &s.record, nil
	}
}

func (s *jsonlSource) Stop() {
	s.stopped = true
	s.close()
	if s.skipped > 0 {
		log.Infof("%s: skipped %d malformed records", s.id, s.skipped)
	}
}

func newJSONLSource(name string, args []string) (arguments []string, ret util.Module, err error) {
	set := pflag.NewFlagSet("jsonl", pflag.ContinueOnError)
	set.SetInterspersed(false)
	dialect := set.String("dialect", flows.TagGeneric.String(), "Dialect of records without dialect key (generic|nsel|nel)")
	if err = set.Parse(args); err != nil {
		return nil, nil, err
	}
	tag, err := flows.ParseRecordTag(*dialect)
	if err != nil {
		return nil, nil, err
	}

	var files []string
	arguments = set.Args()
	for len(arguments) > 0 {
		if arguments[0] == "--" {
			arguments = arguments[1:]
			break
		}
		files = append(files, arguments[0])
		arguments = arguments[1:]
	}

	if len(files) == 0 {
		return nil, nil, errors.New("jsonl source needs at least one input file")
	}

	if name == "" || name == "jsonl" {
		name = fmt.Sprint("jsonl|", strings.Join(files, ";"))
	}
	ret = &jsonlSource{
		id:      name,
		files:   files,
		dialect: tag,
	}
	return
}

func jsonlHelp(name string) {
	fmt.Fprintf(os.Stderr, `
The %s source reads flow records from one or more files containing one json
object per line. Files ending in .zst are zstd compressed, - reads from
stdin. If further commands need to be provided, then "--" can be used to
stop the file list.

Object keys are IPFIX information element names, e.g. flowStartMilliseconds,
protocolIdentifier, sourceIPv4Address, sourceTransportPort, packetDeltaCount,
octetDeltaCount. Address elements can also be given with the version
independent names (sourceIPAddress, destinationIPAddress, ...). Timestamps
are milliseconds since the epoch or RFC 3339 strings. Unknown keys are
ignored, malformed lines are skipped.

The key "dialect" (generic, nsel, or nel) selects the record dialect. Without
it, records with firewallEvent are nsel and records with natEvent are nel
records.

Usage:
  source %s [--dialect generic|nsel|nel] a.jsonl [b.jsonl.zst] [-] [..] [--]
`, name, name)
}
