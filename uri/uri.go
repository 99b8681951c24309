package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/wilddog/wilddog-go/internal/errorutil"
	"github.com/wilddog/wilddog-go/internal/grammar"
	"github.com/wilddog/wilddog-go/internal/ioutil"
	"github.com/wilddog/wilddog-go/internal/types"
	"github.com/wilddog/wilddog-go/internal/util"
)

const (
	// ErrEmptyInput is returned when parsing an empty input.
	ErrEmptyInput = grammar.ErrEmptyInput
	// ErrMalformedInput is returned when the input violates the generic URI structure.
	ErrMalformedInput = grammar.ErrMalformedInput
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// RenderOptions contains options for rendering URIs.
type RenderOptions = types.RenderOptions

// Component is an optional URI component.
// A zero Component is absent, which differs from a present empty one.
type Component struct {
	Value string
	Set   bool
}

// Some returns a present component holding v.
func Some(v string) Component { return Component{Value: v, Set: true} }

// Get returns the component value and whether it is present.
func (c Component) Get() (string, bool) { return c.Value, c.Set }

// Generic is a URI of form
//
//	scheme://[user[:password]@]host[:port][/path][?query][#fragment]
//
// Path holds the text after the slash that ends the authority, so the path
// of "coap://example.com/a/b" is "a/b".
// Components are kept verbatim, no percent-decoding is done.
type Generic struct {
	Scheme   string
	User     Component
	Password Component
	Host     string
	Port     Component
	Path     Component
	Query    Component
	Fragment Component
}

var (
	_ types.Renderer            = (*Generic)(nil)
	_ types.Cloneable[*Generic] = (*Generic)(nil)
	_ types.ValidFlag           = (*Generic)(nil)
	_ types.Equalable           = (*Generic)(nil)
)

// Parse parses a generic URI from the given input s (string or []byte).
//
// The input is scanned once from left to right.
// Scheme and host are mandatory, the scheme is lower-cased.
// An IPv6 host literal keeps its brackets.
// The port is not validated.
func Parse[T types.Byteseq](src T) (*Generic, error) {
	if len(src) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	s := string(src)
	u := new(Generic)

	i := strings.IndexByte(s, ':')
	if i < 0 {
		return nil, errtrace.Wrap(newMalformedInputErr("missing scheme delimiter"))
	}
	if !grammar.IsScheme(s[:i]) {
		return nil, errtrace.Wrap(newMalformedInputErr("invalid scheme %q", s[:i]))
	}
	u.Scheme = util.LCase(s[:i])
	s = s[i+1:]

	if !strings.HasPrefix(s, "//") {
		return nil, errtrace.Wrap(newMalformedInputErr("missing authority marker"))
	}
	s = s[2:]

	// userinfo ends with the first '@' that comes before any '/'
	if i = strings.IndexAny(s, "@/"); i >= 0 && s[i] == '@' {
		if user, pwd, ok := strings.Cut(s[:i], ":"); ok {
			u.User, u.Password = Some(user), Some(pwd)
		} else {
			u.User = Some(user)
		}
		s = s[i+1:]
	}

	if strings.HasPrefix(s, "[") {
		i = strings.IndexByte(s, ']')
		if i < 0 {
			return nil, errtrace.Wrap(newMalformedInputErr("unterminated IPv6 literal"))
		}
		if i == 1 {
			return nil, errtrace.Wrap(newMalformedInputErr("empty host"))
		}
		i++
	} else if i = strings.IndexAny(s, ":/"); i < 0 {
		i = len(s)
	}
	if i == 0 {
		return nil, errtrace.Wrap(newMalformedInputErr("empty host"))
	}
	u.Host, s = s[:i], s[i:]

	if strings.HasPrefix(s, ":") {
		s = s[1:]
		if i = strings.IndexByte(s, '/'); i < 0 {
			i = len(s)
		}
		u.Port, s = Some(s[:i]), s[i:]
	}

	if s == "" {
		return u, nil
	}
	if s[0] != '/' {
		return nil, errtrace.Wrap(newMalformedInputErr("unexpected %q after authority", s[0]))
	}
	s = s[1:]

	if i = strings.IndexAny(s, "?#"); i < 0 {
		i = len(s)
	}
	u.Path, s = Some(s[:i]), s[i:]

	if strings.HasPrefix(s, "?") {
		s = s[1:]
		if i = strings.IndexByte(s, '#'); i < 0 {
			i = len(s)
		}
		u.Query, s = Some(s[:i]), s[i:]
	}

	if strings.HasPrefix(s, "#") {
		u.Fragment = Some(s[1:])
	}
	return u, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse[T types.Byteseq](s T) *Generic { return util.Must2(Parse(s)) }

// IsScheme reports whether s is a valid URI scheme.
func IsScheme[T types.Byteseq](s T) bool { return grammar.IsScheme(s) }

// Clone returns a copy of the URI.
func (u *Generic) Clone() *Generic {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// RenderTo writes the URI to the provided writer.
func (u *Generic) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	cw.WriteString(u.Scheme) //nolint:errcheck
	cw.WriteString("://")    //nolint:errcheck
	if u.User.Set {
		cw.WriteString(u.User.Value) //nolint:errcheck
		if u.Password.Set {
			cw.WriteByte(':') //nolint:errcheck
			if opts != nil && opts.HidePassword {
				cw.WriteString("***") //nolint:errcheck
			} else {
				cw.WriteString(u.Password.Value) //nolint:errcheck
			}
		}
		cw.WriteByte('@') //nolint:errcheck
	}
	cw.WriteString(u.Host) //nolint:errcheck
	if u.Port.Set {
		cw.WriteByte(':')           //nolint:errcheck
		cw.WriteString(u.Port.Value) //nolint:errcheck
	}
	if u.Path.Set || u.Query.Set || u.Fragment.Set {
		cw.WriteByte('/')           //nolint:errcheck
		cw.WriteString(u.Path.Value) //nolint:errcheck
	}
	if u.Query.Set {
		cw.WriteByte('?')            //nolint:errcheck
		cw.WriteString(u.Query.Value) //nolint:errcheck
	}
	if u.Fragment.Set {
		cw.WriteByte('#')               //nolint:errcheck
		cw.WriteString(u.Fragment.Value) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the string representation of the URI.
func (u *Generic) Render(opts *RenderOptions) string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URI.
func (u *Generic) String() string {
	if u == nil {
		return ""
	}
	return u.Render(nil)
}

// Format implements fmt.Formatter for custom formatting of the URI.
func (u *Generic) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f, nil) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.Render(&RenderOptions{HidePassword: true}))
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.Render(&RenderOptions{HidePassword: true})))
		return
	default:
		type hideMethods Generic
		type Generic hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Generic)(u))
		return
	}
}

// LogValue implements [slog.LogValuer].
// The password is never logged.
func (u *Generic) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 7)
	attrs = append(attrs, slog.String("scheme", u.Scheme))
	if u.User.Set {
		attrs = append(attrs, slog.String("user", u.User.Value))
	}
	attrs = append(attrs, slog.String("host", u.Host))
	for _, c := range []struct {
		key string
		val Component
	}{
		{"port", u.Port},
		{"path", u.Path},
		{"query", u.Query},
		{"fragment", u.Fragment},
	} {
		if c.val.Set {
			attrs = append(attrs, slog.String(c.key, c.val.Value))
		}
	}
	return slog.GroupValue(attrs...)
}

// Equal compares this URI with another for equality.
// Scheme and host are compared case-insensitively, other components exactly.
func (u *Generic) Equal(val any) bool {
	var other *Generic
	switch v := val.(type) {
	case Generic:
		other = &v
	case *Generic:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return util.EqFold(u.Scheme, other.Scheme) &&
		util.EqFold(u.Host, other.Host) &&
		u.User == other.User &&
		u.Password == other.Password &&
		u.Port == other.Port &&
		u.Path == other.Path &&
		u.Query == other.Query &&
		u.Fragment == other.Fragment
}

// IsValid checks whether the URI has a valid scheme and a non-empty host.
func (u *Generic) IsValid() bool {
	return u != nil && grammar.IsScheme(u.Scheme) && u.Host != ""
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Generic) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Generic) UnmarshalText(text []byte) error {
	u1, err := Parse(text)
	if err != nil {
		*u = Generic{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
