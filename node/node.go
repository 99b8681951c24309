package node

//go:generate go tool errtrace -w .

import (
	"log/slog"
	"slices"

	"braces.dev/errtrace"

	"github.com/wilddog/wilddog-go/internal/errorutil"
)

const (
	// ErrNilNode is returned when a nil node is found in the tree.
	ErrNilNode errorutil.Error = "nil node"
	// ErrMissingValue is returned when a scalar node has no value.
	ErrMissingValue errorutil.Error = "missing node value"
	// ErrInvalidValue is returned when a scalar node value does not match its kind.
	ErrInvalidValue errorutil.Error = "invalid node value"
	// ErrUnknownKind is returned for a node with an unknown kind.
	ErrUnknownKind errorutil.Error = "unknown node kind"
	// ErrNotObject is returned when members are added to a non-object node.
	ErrNotObject errorutil.Error = "node is not an object"
)

// Kind is a type of the node.
type Kind uint8

const (
	KindObject Kind = iota + 1
	KindTrue
	KindFalse
	KindNull
	KindInteger
	KindFloat
	KindByteArray
	KindUTF8String
)

var kindNames = [...]string{
	KindObject:     "object",
	KindTrue:       "true",
	KindFalse:      "false",
	KindNull:       "null",
	KindInteger:    "integer",
	KindFloat:      "float",
	KindByteArray:  "bytes",
	KindUTF8String: "string",
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsScalar reports whether the kind holds a value instead of members.
func (k Kind) IsScalar() bool { return k > KindObject && int(k) < len(kindNames) }

// Node is an element of an attributed tree.
//
// Object nodes own an ordered list of members, scalar nodes hold a value
// interpreted by their kind: int64 for [KindInteger], float64 for [KindFloat],
// []byte for [KindByteArray] and string for [KindUTF8String].
// A node gets a key when it becomes a member of an object, see [Member].
type Node struct {
	key     string
	keyed   bool
	kind    Kind
	value   any
	members []*Node
}

// New creates a node of the given kind holding value as is.
// The value is checked when the tree is encoded, a nil value of a
// scalar kind makes the encoding fail with [ErrMissingValue].
func New(kind Kind, value any) *Node {
	return &Node{kind: kind, value: value}
}

// Object creates an object node with the given members.
func Object(members ...*Node) *Node {
	return &Node{kind: KindObject, members: members}
}

// Bool creates a true or false node.
func Bool(v bool) *Node {
	if v {
		return &Node{kind: KindTrue}
	}
	return &Node{kind: KindFalse}
}

// Null creates a null node.
func Null() *Node { return &Node{kind: KindNull} }

// Int creates an integer node.
func Int(v int64) *Node { return &Node{kind: KindInteger, value: v} }

// Float creates a float node.
func Float(v float64) *Node { return &Node{kind: KindFloat, value: v} }

// Bytes creates a byte array node.
func Bytes(v []byte) *Node { return &Node{kind: KindByteArray, value: v} }

// String creates an UTF-8 string node.
func String(v string) *Node { return &Node{kind: KindUTF8String, value: v} }

// Member sets the key of n and returns it.
func Member(key string, n *Node) *Node {
	if n == nil {
		return nil
	}
	n.key, n.keyed = key, true
	return n
}

// Key returns the node key and whether it is set.
func (n *Node) Key() (string, bool) {
	if n == nil {
		return "", false
	}
	return n.key, n.keyed
}

// Kind returns the node kind.
func (n *Node) Kind() Kind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Value returns the scalar value of the node, nil for objects.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	return n.value
}

// Len returns the number of object members.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.members)
}

// Members returns a copy of the object member list in insertion order.
func (n *Node) Members() []*Node {
	if n == nil {
		return nil
	}
	return slices.Clone(n.members)
}

// Get returns the first member with the given key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil {
		return nil, false
	}
	for _, m := range n.members {
		if m != nil && m.keyed && m.key == key {
			return m, true
		}
	}
	return nil, false
}

// Append adds members to the end of the object.
func (n *Node) Append(members ...*Node) error {
	if n == nil {
		return errtrace.Wrap(ErrNilNode)
	}
	if n.kind != KindObject {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrNotObject, "kind %s", n.kind))
	}
	n.members = append(n.members, members...)
	return nil
}

// String returns the JSON text of the node, or an empty string if the tree can not be encoded.
func (n *Node) String() string {
	b, err := Serialize(n)
	if err != nil {
		return ""
	}
	return string(b)
}

// MarshalJSON implements [encoding/json.Marshaler].
// Unlike [Serialize], the key of the node itself is never rendered,
// so the result is always a JSON value.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	n2 := *n
	n2.keyed = false
	return errtrace.Wrap2(Serialize(&n2))
}

// LogValue implements [slog.LogValuer].
func (n *Node) LogValue() slog.Value {
	if n == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 3)
	if n.keyed {
		attrs = append(attrs, slog.String("key", n.key))
	}
	attrs = append(attrs, slog.String("kind", n.kind.String()))
	if n.kind == KindObject {
		attrs = append(attrs, slog.Int("members", len(n.members)))
	}
	return slog.GroupValue(attrs...)
}
