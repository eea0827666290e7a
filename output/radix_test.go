package output

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree(names ...string) *tree {
	t := newTree()
	for _, name := range names {
		t.insert(name, &Token{Name: name})
	}
	return t
}

func TestTreeGet(t *testing.T) {
	tr := testTree("sa", "sap", "sas", "fl", "flg", "ts")

	for _, name := range []string{"sa", "sap", "sas", "fl", "flg", "ts"} {
		tok, ok := tr.get(name)
		require.True(t, ok, name)
		assert.Equal(t, name, tok.Name)
	}

	for _, name := range []string{"", "s", "f", "sax", "flgs", "t"} {
		_, ok := tr.get(name)
		assert.False(t, ok, name)
	}
}

func TestTreeLongestMatch(t *testing.T) {
	tr := testTree("sa", "sap", "sas", "fl", "flg", "da", "dap", "xsa", "xsap")

	for _, tc := range []struct {
		input string
		name  string
	}{
		{"sa", "sa"},
		{"sap", "sap"},
		{"sas", "sas"},
		{"sa ", "sa"},
		{"sapx", "sap"},
		{"sax", "sa"},
		{"fl", "fl"},
		{"flg", "flg"},
		{"flgs", "flg"},
		{"fl g", "fl"},
		{"dap -> ", "dap"},
		{"xsa:", "xsa"},
		{"xsap", "xsap"},
	} {
		t.Run(tc.input, func(t *testing.T) {
			tok, n := tr.longestMatch(tc.input)
			require.NotNil(t, tok)
			assert.Equal(t, tc.name, tok.Name)
			assert.Equal(t, len(tc.name), n)
		})
	}

	for _, input := range []string{"", "s", "x", "xs", "zzz", " sa"} {
		tok, n := tr.longestMatch(input)
		assert.Nil(t, tok, input)
		assert.Zero(t, n, input)
	}
}

func TestTreeWalk(t *testing.T) {
	names := []string{"sa", "sap", "sas", "fl", "flg", "ts", "td"}
	tr := testTree(names...)

	var seen []string
	tr.walk(func(tok *Token) {
		seen = append(seen, tok.Name)
	})
	sort.Strings(seen)
	sort.Strings(names)
	assert.Equal(t, names, seen)
}

func TestTreeInsertDuplicate(t *testing.T) {
	tr := testTree("fl", "flg")
	assert.Panics(t, func() { tr.insert("fl", &Token{Name: "fl"}) })
	assert.Panics(t, func() { tr.insert("flg", &Token{Name: "flg"}) })
}
