// Package node implements the attributed tree exchanged with the store
// and its compact JSON rendering.
//
// A tree is built from typed nodes, object members keep insertion order:
//
//	tree := node.Object(
//	    node.Member("n", node.Int(1)),
//	    node.Member("s", node.String("hi")),
//	)
//	b, err := node.Serialize(tree)
//	// string(b) == `{"n":1,"s":"hi"}`
//
// Byte arrays are rendered as quoted lists of hex pairs, e.g. "0a ff".
// Serialization never returns partial text: a scalar node without a value
// fails the whole tree with [ErrMissingValue].
//
// [Parse] performs the inverse conversion from JSON text.
package node
