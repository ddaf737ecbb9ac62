// Package optional reads loosely shaped JSON documents where any intermediate
// key may be missing. Every lookup yields nil instead of failing.
package optional

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Node is one position inside a parsed document.
type Node struct {
	res gjson.Result
}

// Parse wraps raw JSON. Invalid input produces a node for which every path is missing.
func Parse(raw []byte) Node {
	if !gjson.ValidBytes(raw) {
		return Node{}
	}
	return Node{res: gjson.ParseBytes(raw)}
}

// Path descends through the given keys. Dots inside keys are escaped.
func (n Node) Path(keys ...string) Node {
	cur := n.res
	for _, key := range keys {
		if !cur.Exists() {
			return Node{}
		}
		cur = cur.Get(gjson.Escape(key))
	}
	return Node{res: cur}
}

// Exists reports whether the node is present and not JSON null.
func (n Node) Exists() bool {
	return n.res.Exists() && n.res.Type != gjson.Null
}

// Array returns child nodes, or nil when the node is absent or not an array.
func (n Node) Array() []Node {
	if !n.res.IsArray() {
		return nil
	}
	items := n.res.Array()
	out := make([]Node, 0, len(items))
	for _, item := range items {
		out = append(out, Node{res: item})
	}
	return out
}

// Value returns the Go value of the node: string, float64, bool, or nil.
// Objects and arrays come back as their raw JSON text.
func (n Node) Value() any {
	if !n.Exists() {
		return nil
	}
	switch n.res.Type {
	case gjson.String:
		return n.res.Str
	case gjson.Number:
		return n.res.Num
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return n.res.Raw
	}
}

// String returns the textual form of a scalar node and false when absent.
func (n Node) String() (string, bool) {
	if !n.Exists() {
		return "", false
	}
	if n.res.Type == gjson.Number {
		return strconv.FormatFloat(n.res.Num, 'f', -1, 64), true
	}
	return n.res.String(), true
}

// Get is the single accessor used by the transformers: it walks keys from root
// and returns the scalar value there, or nil.
func Get(root Node, keys ...string) any {
	return root.Path(keys...).Value()
}
