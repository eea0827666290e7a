package output

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLayouts(t *testing.T) {
	doc := `
test_pairs:
  format: "%sa:%sp => %da:%dp"
  epilog: none
  description: address pairs
test_events:
  format: "%ts %evt %xsap"
  epilog: events
test_default:
  format: "%ts|%byt"
`
	names, err := ReadLayouts(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"test_default", "test_events", "test_pairs"}, names)

	for _, tc := range []struct {
		name   string
		epilog EpilogKind
	}{
		{"test_pairs", EpilogNone},
		{"test_events", EpilogEvents},
		{"test_default", EpilogSummary},
	} {
		l, ok := LookupLayout(tc.name)
		require.True(t, ok, tc.name)
		assert.Equal(t, tc.epilog, l.Epilog, tc.name)

		alias, err := Compile(tc.name, false)
		require.NoError(t, err)
		canonical, err := Compile(l.Format, false)
		require.NoError(t, err)
		assert.Equal(t, alias, canonical)
		assert.Equal(t, tc.name, alias.Layout().Name)
	}

	l, _ := LookupLayout("test_pairs")
	assert.Equal(t, "address pairs", l.Description)
}

func TestReadLayoutsErrors(t *testing.T) {
	_, err := ReadLayouts(strings.NewReader("line:\n  format: \"%ts\"\n"))
	assert.True(t, errors.Is(err, ErrLayoutExists))

	_, err = ReadLayouts(strings.NewReader("test_empty:\n  epilog: none\n"))
	assert.True(t, errors.Is(err, ErrEmptyFormat))

	_, err = ReadLayouts(strings.NewReader("test_ok:\n  format: \"%ts\"\ntest_bad:\n  format: \"%ts %zzz\"\n"))
	assert.True(t, errors.Is(err, ErrUnknownToken))
	_, ok := LookupLayout("test_ok")
	assert.False(t, ok, "no layout may be registered if one fails")

	_, err = ReadLayouts(strings.NewReader("test_epilog:\n  format: \"%ts\"\n  epilog: sometimes\n"))
	assert.Error(t, err)

	names, err := ReadLayouts(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadLayouts(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "layouts.yaml")
	require.NoError(t, os.WriteFile(fn, []byte("test_file:\n  format: \"%ts %td %sap\"\n"), 0o644))

	names, err := LoadLayouts(fn)
	require.NoError(t, err)
	assert.Equal(t, []string{"test_file"}, names)

	p, err := Compile("test_file", false)
	require.NoError(t, err)
	assert.Len(t, p.Fields(), 3)

	_, err = LoadLayouts(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRegisterLayout(t *testing.T) {
	assert.True(t, errors.Is(RegisterLayout(Layout{Name: "line", Format: "%ts"}), ErrLayoutExists))
	assert.True(t, errors.Is(RegisterLayout(Layout{Name: "test_noformat"}), ErrEmptyFormat))
	assert.Error(t, RegisterLayout(Layout{Format: "%ts"}))

	require.NoError(t, RegisterLayout(Layout{Name: "test_line_copy", Format: "%ts %td %pr %sap -> %dap %pkt %byt %fl"}))
	p, err := Compile("%ts %td %pr %sap -> %dap %pkt %byt %fl", false)
	require.NoError(t, err)
	assert.Equal(t, "line", p.Layout().Name)
}

func TestEpilogKindString(t *testing.T) {
	assert.Equal(t, "summary", EpilogSummary.String())
	assert.Equal(t, "events", EpilogEvents.String())
	assert.Equal(t, "none", EpilogNone.String())
}
