package output

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepNames(p *Plan) []string {
	var ret []string
	for _, s := range p.steps {
		if s.token != nil {
			ret = append(ret, "%"+s.token.Name)
		} else {
			ret = append(ret, string(s.literal))
		}
	}
	return ret
}

var builtinLayouts = []string{"line", "gline", "long", "glong", "extended", "biline", "bilong", "nsel", "nel", "csv"}

func TestCompileAliases(t *testing.T) {
	for _, name := range builtinLayouts {
		l, ok := LookupLayout(name)
		require.True(t, ok, name)
		t.Run(l.Name, func(t *testing.T) {
			for _, plain := range []bool{false, true} {
				alias, err := Compile(l.Name, plain)
				require.NoError(t, err)
				canonical, err := Compile(l.Format, plain)
				require.NoError(t, err)
				explicit, err := Compile("fmt:"+l.Format, plain)
				require.NoError(t, err)

				assert.Equal(t, alias, canonical)
				assert.Equal(t, alias, explicit)
				assert.Equal(t, l.Name, alias.Layout().Name)
				assert.Equal(t, l.Format, alias.Format())
			}
		})
	}
}

func TestCompileLine(t *testing.T) {
	p, err := Compile("line", false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"%ts", " ", "%td", " ", "%pr", " ", "%sap", " -> ", "%dap", " ", "%pkt", " ", "%byt", " ", "%fl",
	}, stepNames(p))
	assert.Equal(t, EpilogSummary, p.Layout().Epilog)
}

func TestCompileLiterals(t *testing.T) {
	for _, format := range []string{
		"%sap -> %dap",
		"%sap <-> %dap",
		"[%ts]\t%pr => %sa",
		"%sa → %da | %byt bytes",
		"  leading and trailing  %fl  ",
		"no tokens at all",
	} {
		t.Run(format, func(t *testing.T) {
			p, err := Compile(format, false)
			require.NoError(t, err)

			var rebuilt strings.Builder
			for _, s := range stepNames(p) {
				rebuilt.WriteString(s)
			}
			assert.Equal(t, format, rebuilt.String())
		})
	}
}

func TestCompileLongestMatch(t *testing.T) {
	for _, tc := range []struct {
		format string
		steps  []string
	}{
		{"%fl", []string{"%fl"}},
		{"%flg", []string{"%flg"}},
		{"%flx", []string{"%fl", "x"}},
		{"%fl%flg", []string{"%fl", "%flg"}},
		{"%sa", []string{"%sa"}},
		{"%sap", []string{"%sap"}},
		{"%sas", []string{"%sas"}},
		{"%sa:%sp", []string{"%sa", ":", "%sp"}},
		{"%da%dap%das", []string{"%da", "%dap", "%das"}},
		{"%xsa %xsap", []string{"%xsa", " ", "%xsap"}},
		{"%gsap", []string{"%gsap"}},
		{"%pkt%pps", []string{"%pkt", "%pps"}},
		{"%ibytes", []string{"%ibyt", "es"}},
	} {
		t.Run(tc.format, func(t *testing.T) {
			p, err := Compile(tc.format, false)
			require.NoError(t, err)
			assert.Equal(t, tc.steps, stepNames(p))
		})
	}
}

func TestCompileUnknownToken(t *testing.T) {
	for _, tc := range []struct {
		format string
		token  string
		offset int
	}{
		{"%zzz", "%zzz", 0},
		{"%ts %zzz", "%zzz", 4},
		{"%ts -> %Sa", "%Sa", 7},
		{"%sa %q1x -> %da", "%q1x", 4},
		{"%ts %", "%", 4},
		{"%%ts", "%", 0},
		{"fmt:%ts %zzz", "%zzz", 8},
	} {
		t.Run(tc.format, func(t *testing.T) {
			p, err := Compile(tc.format, false)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrUnknownToken))

			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.token, ce.Token)
			assert.Equal(t, tc.offset, ce.Offset)
			assert.Equal(t, tc.format, ce.Format)
			assert.Contains(t, err.Error(), tc.token)
		})
	}
}

func TestCompileDefault(t *testing.T) {
	p, err := Compile("", false)
	require.NoError(t, err)
	l, ok := LookupLayout(DefaultFormat)
	require.True(t, ok)
	assert.Equal(t, l.Format, p.Format())
	assert.Equal(t, DefaultFormat, p.Layout().Name)

	_, ok = LookupLayout(DefaultGeoFormat)
	assert.True(t, ok)
}

func TestCompileExplicitFormat(t *testing.T) {
	p, err := Compile("fmt:line", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"line"}, stepNames(p))
	assert.Empty(t, p.Layout().Name)

	_, err = Compile("fmt:", false)
	assert.True(t, errors.Is(err, ErrEmptyFormat))
}

func TestCompilePlain(t *testing.T) {
	p, err := Compile("%pkt %byt", true)
	require.NoError(t, err)
	for _, s := range p.steps {
		if s.token != nil {
			assert.True(t, s.plain)
		}
	}

	p, err = Compile("csv", false)
	require.NoError(t, err)
	assert.True(t, p.Layout().Machine)
	for _, s := range p.steps {
		if s.token != nil {
			assert.True(t, s.plain)
		}
	}
}

func TestPlanFields(t *testing.T) {
	p := MustCompile("%ts %sap -> %dap", false)
	var names []string
	for _, tok := range p.Fields() {
		names = append(names, tok.Name)
	}
	assert.Equal(t, []string{"ts", "sap", "dap"}, names)

	assert.Panics(t, func() { MustCompile("%zzz", false) })
}
