package output

import (
	"strings"
)

type edge struct {
	node  *node
	label byte
}

type node struct {
	leaf   *Token
	prefix string
	edges  map[byte]edge
}

func (n *node) isLeaf() bool {
	return n.leaf != nil
}

func (n *node) addEdge(e edge) {
	n.edges[e.label] = e
}

func (n *node) replaceEdge(e edge) {
	n.edges[e.label] = e
}

func (n *node) getEdge(label byte) *node {
	ret, found := n.edges[label]
	if !found {
		return nil
	}
	return ret.node
}

// tree is a radix tree over token names. Token names end at nodes, never inside an edge.
type tree struct {
	root *node
}

func newTree() *tree {
	return &tree{root: &node{edges: make(map[byte]edge)}}
}

func longestPrefix(k1, k2 string) int {
	max := len(k1)
	if l := len(k2); l < max {
		max = l
	}
	var i int
	for i = 0; i < max; i++ {
		if k1[i] != k2[i] {
			break
		}
	}
	return i
}

func (t *tree) insert(search string, tok *Token) {
	var parent *node
	n := t.root
	for {
		if len(search) == 0 {
			if n.isLeaf() {
				panic("Already existent")
			}

			n.leaf = tok
			return
		}

		parent = n
		n = n.getEdge(search[0])

		if n == nil {
			e := edge{
				label: search[0],
				node: &node{
					leaf:   tok,
					prefix: search,
					edges:  make(map[byte]edge),
				},
			}
			parent.addEdge(e)
			return
		}

		commonPrefix := longestPrefix(search, n.prefix)
		if commonPrefix == len(n.prefix) { //exact edge match
			search = search[commonPrefix:]
			continue
		}

		child := &node{
			prefix: search[:commonPrefix],
			edges:  make(map[byte]edge),
		}
		parent.replaceEdge(edge{
			label: search[0],
			node:  child,
		})

		child.addEdge(edge{
			label: n.prefix[commonPrefix],
			node:  n,
		})
		n.prefix = n.prefix[commonPrefix:]

		search = search[commonPrefix:]
		if len(search) == 0 {
			child.leaf = tok
			return
		}

		child.addEdge(edge{
			label: search[0],
			node: &node{
				leaf:   tok,
				prefix: search,
				edges:  make(map[byte]edge),
			},
		})
		return
	}
}

// get is used to lookup a specific key, returning
// the value and if it was found
func (t *tree) get(s string) (*Token, bool) {
	n := t.root
	search := s
	for {
		// Check for key exhaution
		if len(search) == 0 {
			if n.isLeaf() {
				return n.leaf, true
			}
			break
		}

		// Look for an edge
		n = n.getEdge(search[0])
		if n == nil {
			break
		}

		// Consume the search prefix
		if strings.HasPrefix(search, n.prefix) {
			search = search[len(n.prefix):]
		} else {
			break
		}
	}
	return nil, false
}

// longestMatch returns the token with the longest name that is a prefix of s, and the length
// of that name. Shorter names are only returned if no longer name matches.
func (t *tree) longestMatch(s string) (*Token, int) {
	var match *Token
	matched := 0
	consumed := 0
	n := t.root
	search := s
	for {
		if n.isLeaf() {
			match = n.leaf
			matched = consumed
		}
		if len(search) == 0 {
			break
		}
		n = n.getEdge(search[0])
		if n == nil || !strings.HasPrefix(search, n.prefix) {
			break
		}
		consumed += len(n.prefix)
		search = search[len(n.prefix):]
	}
	return match, matched
}

func (t *tree) walk(fn func(*Token)) {
	recursiveWalk(t.root, fn)
}

func recursiveWalk(n *node, fn func(*Token)) {
	if n == nil {
		return
	}
	if n.leaf != nil {
		fn(n.leaf)
	}

	// Recurse on the children
	for _, e := range n.edges {
		recursiveWalk(e.node, fn)
	}
}
