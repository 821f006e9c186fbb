package keymap

import (
	"github.com/dshills/modekeys/internal/input/key"
)

// prefixTree indexes bindings by their key chain for prefix lookup.
type prefixTree struct {
	root *treeNode
}

type treeNode struct {
	children map[key.Info]*treeNode

	// payload is set when a binding terminates at this node.
	payload    string
	hasPayload bool
}

func newPrefixTree() *prefixTree {
	return &prefixTree{root: newTreeNode()}
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[key.Info]*treeNode)}
}

// insert adds a binding, replacing any payload already at that chain.
func (t *prefixTree) insert(seq key.Sequence, payload string) {
	node := t.root
	for _, info := range seq.Keys() {
		child, ok := node.children[info]
		if !ok {
			child = newTreeNode()
			node.children[info] = child
		}
		node = child
	}
	node.payload = payload
	node.hasPayload = true
}

// match walks the tree along the typed sequence. A terminating payload
// wins over a longer chain sharing the prefix.
func (t *prefixTree) match(seq key.Sequence) (Match, string) {
	node := t.root
	for _, info := range seq.Keys() {
		child, ok := node.children[info]
		if !ok {
			return NoMatch, ""
		}
		node = child
	}

	if node.hasPayload {
		return ExactMatch, node.payload
	}
	if len(node.children) > 0 {
		return PartialMatch, ""
	}
	return NoMatch, ""
}
