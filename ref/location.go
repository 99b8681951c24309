package ref

import (
	"fmt"
	"log/slog"
	"strconv"

	"braces.dev/errtrace"

	"github.com/wilddog/wilddog-go/internal/types"
	"github.com/wilddog/wilddog-go/internal/util"
	"github.com/wilddog/wilddog-go/uri"
)

// Location addresses a node of the hierarchical store: host, canonical path and optional query.
//
// A zero Location is not valid, use [Resolve], [FromURI] or [NewLocation].
type Location struct {
	host  string
	path  Path
	query uri.Component
}

var _ types.Equalable = Location{}

// Resolve parses the URI and builds a Location from it (string or []byte).
func Resolve[T types.Byteseq](s T) (Location, error) {
	u, err := uri.Parse(s)
	if err != nil {
		return Location{}, errtrace.Wrap(err)
	}
	return FromURI(u), nil
}

// MustResolve is like [Resolve] but panics on error.
func MustResolve[T types.Byteseq](s T) Location { return util.Must2(Resolve(s)) }

// FromURI builds a Location from the parsed URI.
// The path is normalized with [Normalize], the query is copied verbatim.
func FromURI(u *uri.Generic) Location {
	if u == nil {
		return Location{}
	}
	return Location{
		host:  u.Host,
		path:  Normalize(u.Path.Value),
		query: u.Query,
	}
}

// NewLocation creates a Location without query.
// The path is normalized with [Normalize].
func NewLocation(host string, p Path) Location {
	return Location{host: host, path: Normalize(string(p))}
}

// Host returns the host, IPv6 literals keep the brackets.
func (l Location) Host() string { return l.host }

// Path returns the canonical path.
func (l Location) Path() Path { return l.path }

// Query returns the query and whether it is present.
func (l Location) Query() (string, bool) { return l.query.Get() }

// WithQuery returns a copy of the location with the query set to q.
func (l Location) WithQuery(q string) Location {
	l.query = uri.Some(q)
	return l
}

// Key returns the leaf key of the location path.
func (l Location) Key() string { return Key(l.path) }

// Parent returns the location of the parent node.
// The query is dropped. The second result is false if there is no parent.
func (l Location) Parent() (Location, bool) {
	p, ok := Parent(l.path)
	if !ok {
		return Location{}, false
	}
	return Location{host: l.host, path: p}, true
}

// Root returns the location of the store root on the same host.
func (l Location) Root() Location { return Location{host: l.host, path: RootPath} }

// Child returns the location of the named child node.
// The query is dropped.
func (l Location) Child(name string) (Location, error) {
	p, err := Child(l.path, name)
	if err != nil {
		return Location{}, errtrace.Wrap(err)
	}
	return Location{host: l.host, path: p}, nil
}

// Navigate applies op to the location path, see [Navigate].
func (l Location) Navigate(op Op, name string) (Location, error) {
	p, err := Navigate(l.path, op, name)
	if err != nil {
		return Location{}, errtrace.Wrap(err)
	}
	return Location{host: l.host, path: p}, nil
}

// Diff reports whether two locations address different nodes.
// Locations differ when hosts or paths differ, the query is not compared.
func Diff(a, b Location) bool {
	return a.host != b.host || a.path != b.path
}

// Equal reports whether the val is a Location addressing the same node.
func (l Location) Equal(val any) bool {
	var other Location
	switch v := val.(type) {
	case Location:
		other = v
	case *Location:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return !Diff(l, other)
}

// IsValid reports whether the location has a host and a canonical path.
func (l Location) IsValid() bool { return l.host != "" && l.path.IsValid() }

// IsZero reports whether l is the zero Location.
func (l Location) IsZero() bool { return l == Location{} }

// String returns the location as "host/path[?query]".
func (l Location) String() string {
	if l.IsZero() {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(l.host)
	sb.WriteString(string(l.path))
	if l.query.Set {
		sb.WriteByte('?')
		sb.WriteString(l.query.Value)
	}
	return sb.String()
}

// Format implements fmt.Formatter for custom formatting of the location.
func (l Location) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, l.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(l.String()))
		return
	default:
		type hideMethods Location
		type Location hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Location(l))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (l Location) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("host", l.host),
		slog.String("path", string(l.path)),
	}
	if l.query.Set {
		attrs = append(attrs, slog.String("query", l.query.Value))
	}
	return slog.GroupValue(attrs...)
}
