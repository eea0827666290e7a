package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CN-TU/go-flowfmt/flows"
)

func TestProlog(t *testing.T) {
	p := MustCompile("line", false)

	var buf bytes.Buffer
	require.NoError(t, p.Prolog(&buf, testContext(ModeV4)))
	assert.Equal(t, "Date first seen          Duration Proto Src IP Addr:Port       -> Dst IP Addr:Port        Packets    Bytes Flows\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Prolog(&buf, testContext(ModeV6)))
	assert.Equal(t, "Date first seen          Duration Proto Src IP Addr:Port                              -> Dst IP Addr:Port                               Packets    Bytes Flows\n", buf.String())
}

func TestPrologMatchesColumns(t *testing.T) {
	for _, name := range []string{"line", "long", "extended", "biline", "bilong", "gline"} {
		p := MustCompile(name, false)
		ctx := testContext(ModeV4)
		header := p.AppendProlog(nil, ctx)
		line := p.AppendRecord(nil, ctx, testRecord())
		assert.Equal(t, len(line)+1, len(header), name)
	}
}

func TestPrologSuppressed(t *testing.T) {
	var buf bytes.Buffer
	ctx := testContext(ModeV4)
	ctx.Quiet = true
	require.NoError(t, MustCompile("line", false).Prolog(&buf, ctx))
	require.NoError(t, MustCompile("line", false).Epilog(&buf, ctx, &Summary{Records: 1}))
	assert.Empty(t, buf.String())

	ctx.Quiet = false
	require.NoError(t, MustCompile("csv", false).Prolog(&buf, ctx))
	require.NoError(t, MustCompile("csv", false).Epilog(&buf, ctx, &Summary{Records: 1}))
	assert.Empty(t, buf.String())
}

func testSummary() *Summary {
	var sum Summary
	a := testRecord()
	b := testRecord()
	b.Start += flows.SecondsInMilliseconds
	b.End += flows.SecondsInMilliseconds
	sum.Add(a)
	sum.Add(b)
	return &sum
}

func TestSummary(t *testing.T) {
	sum := testSummary()
	assert.Equal(t, uint64(2), sum.Records)
	assert.Equal(t, uint64(2), sum.Flows)
	assert.Equal(t, uint64(200), sum.Packets)
	assert.Equal(t, uint64(12800), sum.Bytes)
	assert.Equal(t, testStart, sum.First)
	assert.Equal(t, testStart+6*flows.SecondsInMilliseconds, sum.Last)

	bps, pps, bpp := sum.Rates()
	assert.Equal(t, uint64(17066), bps)
	assert.Equal(t, uint64(33), pps)
	assert.Equal(t, uint64(64), bpp)

	var empty Summary
	bps, pps, bpp = empty.Rates()
	assert.Zero(t, bps)
	assert.Zero(t, pps)
	assert.Zero(t, bpp)
}

func TestEpilog(t *testing.T) {
	ctx := testContext(ModeV4)
	for _, tc := range []struct {
		format string
		plain  bool
		want   string
	}{
		{"line", true, "Summary: total flows: 2, total bytes: 12800, total packets: 200, avg bps: 17066, avg pps: 33, avg bpp: 64\n"},
		{"%ts %sap", true, "Summary: total flows: 2, total bytes: 12800, total packets: 200, avg bps: 17066, avg pps: 33, avg bpp: 64\n"},
		{"nsel", false, "Summary: total events: 2\n"},
		{"nel", true, "Summary: total events: 2\n"},
	} {
		t.Run(tc.format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, MustCompile(tc.format, tc.plain).Epilog(&buf, ctx, testSummary()))
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestEpilogScaled(t *testing.T) {
	sum := &Summary{Records: 1, Flows: 1, Packets: 3000000, Bytes: 4500000000}
	var buf bytes.Buffer
	require.NoError(t, MustCompile("line", false).Epilog(&buf, testContext(ModeV4), sum))
	assert.Equal(t, "Summary: total flows: 1, total bytes: 4.5 G, total packets: 3.0 M, avg bps: 0, avg pps: 0, avg bpp: 1500\n", buf.String())
}

func TestPrologWriteError(t *testing.T) {
	werr := errors.New("broken pipe")
	p := MustCompile("line", false)
	assert.Equal(t, werr, p.Prolog(errWriter{werr}, testContext(ModeV4)))
	assert.Equal(t, werr, p.Epilog(errWriter{werr}, testContext(ModeV4), nil))
}
