package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterSession(t *testing.T) {
	var buf bytes.Buffer
	p := MustCompile("line", true)
	ctx := testContext(ModeV4)
	w := NewWriter(&buf, p, ctx)

	for i := 0; i < 3; i++ {
		require.NoError(t, w.Write(testRecord()))
	}
	assert.Empty(t, buf.String(), "output must be buffered")
	require.NoError(t, w.Finish())
	require.NoError(t, w.Finish())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, strings.TrimSuffix(string(p.AppendProlog(nil, ctx)), "\n"), lines[0])
	for _, line := range lines[1:4] {
		assert.Equal(t, string(p.AppendRecord(nil, ctx, testRecord())), line)
	}
	assert.True(t, strings.HasPrefix(lines[4], "Summary: total flows: 3, total bytes: 19200, total packets: 300,"), lines[4])
	assert.Equal(t, uint64(3), w.Summary().Records)
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, MustCompile("nsel", false), testContext(ModeV4))
	require.NoError(t, w.Finish())

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Summary: total events: 0", lines[1])
}

func TestWriterMachine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, MustCompile("csv", false), testContext(ModeV4))
	require.NoError(t, w.Write(testRecord()))
	require.NoError(t, w.Finish())
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	ctx := testContext(ModeV4)
	ctx.Quiet = true
	w := NewWriter(&buf, MustCompile("%pr", true), ctx)
	w.SetFlush(true)
	require.NoError(t, w.Write(testRecord()))
	assert.Equal(t, "6    \n", buf.String())
}

func TestWriterError(t *testing.T) {
	werr := errors.New("disk full")

	w := NewWriter(errWriter{werr}, MustCompile("line", false), testContext(ModeV4))
	require.NoError(t, w.Write(testRecord()))
	assert.Equal(t, werr, w.Finish())
	assert.Equal(t, werr, w.Finish())
	assert.Equal(t, werr, w.Write(testRecord()))

	w = NewWriter(errWriter{werr}, MustCompile("line", false), testContext(ModeV4))
	w.SetFlush(true)
	assert.Equal(t, werr, w.Write(testRecord()))
	assert.Equal(t, werr, w.Write(testRecord()))
	assert.Equal(t, werr, w.Finish())
	assert.Equal(t, uint64(1), w.Summary().Records)
}
