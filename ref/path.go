package ref

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/wilddog/wilddog-go/internal/errorutil"
)

const (
	// ErrInvalidSegment is returned when a child name can not be joined to a path.
	ErrInvalidSegment errorutil.Error = "invalid path segment"
	// ErrNoParent is returned by [Navigate] when the path has no parent.
	ErrNoParent errorutil.Error = "no parent"
	// ErrInvalidOp is returned by [Navigate] for an unknown operation.
	ErrInvalidOp errorutil.Error = "invalid navigation operation"
)

// RootPath is the canonical path of the store root.
const RootPath Path = "/"

// Path is a resource path inside the hierarchical store.
//
// Canonical paths start with "/" and never end with "/", except the root itself.
// The functions of this package accept any path string and do not
// normalize it beyond skipping a single trailing slash.
type Path string

// Normalize converts a path as it appears in a URI into the canonical form:
// empty input becomes the root, a leading "/" is added when missing
// and trailing slashes are dropped.
func Normalize(s string) Path {
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	if s = strings.TrimRight(s, "/"); s == "" {
		return RootPath
	}
	return Path(s)
}

// Key returns the leaf key of the path: the text after its last "/".
//
// The root key is "/". A single trailing slash is skipped,
// so the key of "/a/b/" is "b", while the key of "/a/b//" is empty.
// A path made of slashes only, like "//", is keyed as the root.
func Key(p Path) string {
	s := trimSlash(string(p))
	if isRootLike(s) {
		return string(RootPath)
	}
	return s[strings.LastIndexByte(s, '/')+1:]
}

// Parent returns the path of the parent node.
//
// The root, and any path made of slashes only, is its own parent.
// Paths without a "/" past their first character,
// like "/a" or "a", have no parent and the second result is false.
func Parent(p Path) (Path, bool) {
	s := trimSlash(string(p))
	if isRootLike(s) {
		return RootPath, true
	}
	i := strings.LastIndexByte(s, '/')
	if i <= 0 {
		return "", false
	}
	return Path(s[:i]), true
}

// Root returns the root path. It exists for symmetry with [Parent] and [Child].
func Root(Path) Path { return RootPath }

// Child joins the name to the path.
//
// The name must not be empty, be a bare "/" or contain "//".
// A name starting with "/" is appended as is, otherwise a separator is inserted.
func Child(p Path, name string) (Path, error) {
	if err := validateSegment(name); err != nil {
		return "", errtrace.Wrap(err)
	}
	switch {
	case p == RootPath && name[0] == '/':
		return Path(name), nil
	case p == RootPath:
		return Path("/" + name), nil
	case name[0] == '/':
		return p + Path(name), nil
	default:
		return p + "/" + Path(name), nil
	}
}

func validateSegment(name string) error {
	switch {
	case name == "":
		return errorutil.NewWrapperError(ErrInvalidSegment, "empty name") //errtrace:skip
	case name == "/":
		return errorutil.NewWrapperError(ErrInvalidSegment, "bare slash") //errtrace:skip
	case strings.Contains(name, "//"):
		return errorutil.NewWrapperError(ErrInvalidSegment, "name %q contains empty segment", name) //errtrace:skip
	default:
		return nil
	}
}

// isRootLike reports whether s, with one trailing slash already skipped, addresses the root.
func isRootLike(s string) bool { return s == "" || s == string(RootPath) }

func trimSlash(s string) string {
	if len(s) > 0 && s[len(s)-1] == '/' {
		return s[:len(s)-1]
	}
	return s
}

// Op is a navigation operation over paths.
type Op uint8

const (
	// OpParent navigates to the parent path.
	OpParent Op = iota + 1
	// OpRoot navigates to the root path.
	OpRoot
	// OpChild navigates to the named child path.
	OpChild
)

// String returns the operation name.
func (op Op) String() string {
	switch op {
	case OpParent:
		return "parent"
	case OpRoot:
		return "root"
	case OpChild:
		return "child"
	default:
		return "unknown"
	}
}

// Navigate applies op to the path.
// The name is used by [OpChild] only.
//
// Unlike [Parent], a missing parent is reported with [ErrNoParent],
// so callers walking up the tree can stop on it.
func Navigate(p Path, op Op, name string) (Path, error) {
	switch op {
	case OpParent:
		pp, ok := Parent(p)
		if !ok {
			return "", errtrace.Wrap(ErrNoParent)
		}
		return pp, nil
	case OpRoot:
		return Root(p), nil
	case OpChild:
		return errtrace.Wrap2(Child(p, name))
	default:
		return "", errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidOp, "%d", uint8(op)))
	}
}

// Key returns the leaf key of the path, see [Key].
func (p Path) Key() string { return Key(p) }

// Parent returns the parent path, see [Parent].
func (p Path) Parent() (Path, bool) { return Parent(p) }

// Root returns the root path.
func (p Path) Root() Path { return RootPath }

// Child joins the name to the path, see [Child].
func (p Path) Child(name string) (Path, error) { return errtrace.Wrap2(Child(p, name)) }

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool { return p == RootPath }

// IsValid reports whether p is canonical.
func (p Path) IsValid() bool {
	return p == RootPath || strings.HasPrefix(string(p), "/") && !strings.HasSuffix(string(p), "/")
}

func (p Path) String() string { return string(p) }
