package jsonl

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/CN-TU/go-flowfmt/flows"
)

func parse(t *testing.T, s string) *fastjson.Value {
	t.Helper()
	v, err := fastjson.Parse(s)
	require.NoError(t, err)
	return v
}

func TestDecode(t *testing.T) {
	var r flows.FlowRecord
	err := decode(&r, parse(t, `{
		"flowStartMilliseconds": 1704164645678,
		"flowEndMilliseconds": "2024-01-02T03:04:10.678Z",
		"protocolIdentifier": 6,
		"sourceIPv4Address": "10.0.0.1",
		"destinationIPAddress": "2001:db8::1",
		"sourceTransportPort": 1234,
		"destinationTransportPort": 80,
		"packetDeltaCount": 100,
		"octetDeltaCount": 6400,
		"postPacketDeltaCount": 50,
		"tcpControlBits": 18,
		"ingressInterface": 3,
		"bgpSourceAsNumber": 65000,
		"exporterIPv4Address": "172.16.0.1",
		"somethingElse": [1, 2, 3]
	}`), flows.TagGeneric)
	require.NoError(t, err)

	assert.Equal(t, flows.TagGeneric, r.Dialect)
	assert.Equal(t, flows.DateTimeMilliseconds(1704164645678), r.Start)
	assert.Equal(t, flows.FromTime(time.Date(2024, 1, 2, 3, 4, 10, 678000000, time.UTC)), r.End)
	assert.Equal(t, uint8(6), r.Proto)
	assert.True(t, net.ParseIP("10.0.0.1").Equal(r.SrcAddr))
	assert.True(t, net.ParseIP("2001:db8::1").Equal(r.DstAddr))
	assert.Equal(t, uint16(1234), r.SrcPort)
	assert.Equal(t, uint16(80), r.DstPort)
	assert.Equal(t, uint64(100), r.InPkts)
	assert.Equal(t, uint64(6400), r.InOctets)
	assert.Equal(t, uint64(50), r.OutPkts)
	assert.Equal(t, uint64(1), r.FlowCount)
	assert.Equal(t, uint8(18), r.Flags)
	assert.Equal(t, uint32(3), r.Input)
	assert.Equal(t, uint32(65000), r.SrcAS)
	assert.True(t, net.ParseIP("172.16.0.1").Equal(r.Router))
}

func TestDecodeDialect(t *testing.T) {
	for _, tc := range []struct {
		json    string
		dialect flows.RecordTag
		want    flows.RecordTag
	}{
		{`{"protocolIdentifier": 6}`, flows.TagGeneric, flows.TagGeneric},
		{`{"firewallEvent": 1}`, flows.TagGeneric, flows.TagNSEL},
		{`{"natEvent": 4}`, flows.TagGeneric, flows.TagNEL},
		{`{"firewallEvent": 1, "dialect": "generic"}`, flows.TagGeneric, flows.TagGeneric},
		{`{"dialect": "NEL"}`, flows.TagGeneric, flows.TagNEL},
		{`{"protocolIdentifier": 6}`, flows.TagNSEL, flows.TagNSEL},
	} {
		var r flows.FlowRecord
		require.NoError(t, decode(&r, parse(t, tc.json), tc.dialect), tc.json)
		assert.Equal(t, tc.want, r.Dialect, tc.json)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, json := range []string{
		`[1, 2]`,
		`{"sourceTransportPort": 70000}`,
		`{"protocolIdentifier": -1}`,
		`{"protocolIdentifier": "tcp"}`,
		`{"sourceIPAddress": "10.0.0.256"}`,
		`{"sourceIPAddress": 167772161}`,
		`{"flowStartMilliseconds": "yesterday"}`,
		`{"dialect": "netflow"}`,
	} {
		var r flows.FlowRecord
		assert.Error(t, decode(&r, parse(t, json), flows.TagGeneric), json)
	}
}

const testLines = `{"protocolIdentifier": 6, "sourceIPv4Address": "10.0.0.1"}

not json
{"protocolIdentifier": 17, "sourceTransportPort": 99999}
{"protocolIdentifier": 17}
`

func writeZstd(t *testing.T, fn string, data string) {
	t.Helper()
	f, err := os.Create(fn)
	require.NoError(t, err)
	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestSource(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "a.jsonl")
	compressed := filepath.Join(dir, "b.jsonl.zst")
	require.NoError(t, os.WriteFile(plain, []byte(testLines), 0o644))
	writeZstd(t, compressed, `{"protocolIdentifier": 1, "firewallEvent": 3}`+"\n")

	args, src, err := flows.MakeSource("jsonl", []string{plain, compressed, "--", "source", "other"})
	require.NoError(t, err)
	assert.Equal(t, []string{"source", "other"}, args)
	require.NoError(t, src.Init())

	var sources flows.Sources
	sources.Append(src)

	var protos []uint8
	var dialects []flows.RecordTag
	for {
		rec, err := sources.ReadRecord()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		protos = append(protos, rec.Protocol())
		dialects = append(dialects, rec.Tag())
	}
	assert.Equal(t, []uint8{6, 17, 1}, protos)
	assert.Equal(t, []flows.RecordTag{flows.TagGeneric, flows.TagGeneric, flows.TagNSEL}, dialects)
	assert.Equal(t, 0, sources.Len())
	assert.Equal(t, 2, src.(*jsonlSource).skipped)
}

func TestSourceArguments(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "a.jsonl")
	require.NoError(t, os.WriteFile(fn, []byte(`{"protocolIdentifier": 6}`+"\n"), 0o644))

	args, src, err := flows.MakeSource("jsonl", []string{"--dialect", "nel", fn})
	require.NoError(t, err)
	assert.Empty(t, args)
	rec, err := src.ReadRecord()
	require.NoError(t, err)
	assert.Equal(t, flows.TagNEL, rec.Tag())
	src.Stop()
	_, err = src.ReadRecord()
	assert.Equal(t, io.EOF, err)

	_, _, err = flows.MakeSource("jsonl", nil)
	assert.Error(t, err)

	_, _, err = flows.MakeSource("jsonl", []string{"--dialect", "cisco", fn})
	assert.Error(t, err)

	_, src, err = flows.MakeSource("jsonl", []string{filepath.Join(t.TempDir(), "missing.jsonl")})
	require.NoError(t, err)
	assert.Error(t, src.Init())
}
