package ref_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/wilddog/wilddog-go/ref"
	"github.com/wilddog/wilddog-go/uri"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	type result struct {
		Host     string
		Path     ref.Path
		Query    string
		HasQuery bool
	}

	cases := []struct {
		name    string
		in      string
		want    result
		wantErr error
	}{
		{
			"full",
			"http://user:pw@host.com:8080/a/b?x=1#frag",
			result{"host.com", "/a/b", "x=1", true},
			nil,
		},
		{"no path", "coap://host.com", result{"host.com", "/", "", false}, nil},
		{"root path", "coap://host.com/", result{"host.com", "/", "", false}, nil},
		{"trailing slash", "coap://host.com/a/b/", result{"host.com", "/a/b", "", false}, nil},
		// "coap://host.com/a//" resolves to "/a": every trailing slash is dropped, not only the last one
		{"repeated trailing slashes", "coap://host.com/a//", result{"host.com", "/a", "", false}, nil},
		{"double leading slash", "coap://host.com//a", result{"host.com", "/a", "", false}, nil},
		{"empty query", "coap://host.com/a?", result{"host.com", "/a", "", true}, nil},
		{"ipv6", "coap://[::1]:5683/a", result{"[::1]", "/a", "", false}, nil},
		{"malformed", "host.com/a", result{}, uri.ErrMalformedInput},
		{"empty", "", result{}, uri.ErrEmptyInput},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			loc, err := ref.Resolve(c.in)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("ref.Resolve(%q) error = %v, want %v\ndiff (-got +want):\n%v", c.in, err, c.wantErr, diff)
			}
			q, hasQ := loc.Query()
			got := result{loc.Host(), loc.Path(), q, hasQ}
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("ref.Resolve(%q) = %+v, want %+v\ndiff (-got +want):\n%v", c.in, got, c.want, diff)
			}
			if err == nil && !loc.Path().IsValid() {
				t.Errorf("ref.Resolve(%q).Path() = %q, not canonical", c.in, loc.Path())
			}
		})
	}
}

func TestFromURI(t *testing.T) {
	t.Parallel()

	if got := ref.FromURI(nil); !got.IsZero() {
		t.Errorf("ref.FromURI(nil) = %v, want zero", got)
	}

	loc := ref.FromURI(&uri.Generic{Scheme: "coap", Host: "h", Path: uri.Some("a/b/")})
	if got, want := loc.String(), "h/a/b"; got != want {
		t.Errorf("ref.FromURI(u).String() = %q, want %q", got, want)
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b string
		want bool
	}{
		{"same", "coap://h/a/b", "coap://h/a/b", false},
		{"query ignored", "coap://h/a/b?x=1", "coap://h/a/b?y=2", false},
		{"scheme and port ignored", "coap://h:1/a", "coaps://h:2/a", false},
		{"trailing slash normalized", "coap://h/a/", "coap://h/a", false},
		{"host differs", "coap://h1/a", "coap://h2/a", true},
		{"path differs", "coap://h/a", "coap://h/b", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			a, b := ref.MustResolve(c.a), ref.MustResolve(c.b)
			if got := ref.Diff(a, b); got != c.want {
				t.Errorf("ref.Diff(%q, %q) = %v, want %v", a, b, got, c.want)
			}
			if got := a.Equal(b); got == c.want {
				t.Errorf("a.Equal(b) = %v, want %v", got, !c.want)
			}
			if got := a.Equal(&b); got == c.want {
				t.Errorf("a.Equal(&b) = %v, want %v", got, !c.want)
			}
		})
	}

	if ref.MustResolve("coap://h/a").Equal("coap://h/a") {
		t.Error("loc.Equal(string) = true, want false")
	}
	if ref.MustResolve("coap://h/a").Equal((*ref.Location)(nil)) {
		t.Error("loc.Equal(nil ptr) = true, want false")
	}
}

func TestLocation_Navigation(t *testing.T) {
	t.Parallel()

	loc := ref.MustResolve("coaps://demo.wilddogio.com/users/alice?auth=tok")

	if got, want := loc.Key(), "alice"; got != want {
		t.Errorf("loc.Key() = %q, want %q", got, want)
	}

	parent, ok := loc.Parent()
	if !ok {
		t.Fatal("loc.Parent() ok = false, want true")
	}
	if got, want := parent.String(), "demo.wilddogio.com/users"; got != want {
		t.Errorf("loc.Parent() = %q, want %q", got, want)
	}
	if _, ok := parent.Parent(); ok {
		t.Error("parent.Parent() ok = true, want false")
	}

	if got, want := loc.Root().String(), "demo.wilddogio.com/"; got != want {
		t.Errorf("loc.Root() = %q, want %q", got, want)
	}

	child, err := loc.Child("settings")
	if err != nil {
		t.Fatalf("loc.Child(\"settings\") error = %v, want nil", err)
	}
	if got, want := child.String(), "demo.wilddogio.com/users/alice/settings"; got != want {
		t.Errorf("loc.Child(\"settings\") = %q, want %q", got, want)
	}
	if _, ok := child.Query(); ok {
		t.Error("child.Query() ok = true, want false")
	}

	if _, err := loc.Child("a//b"); !cmp.Equal(err, ref.ErrInvalidSegment, cmpopts.EquateErrors()) {
		t.Errorf("loc.Child(\"a//b\") error = %v, want %v", err, ref.ErrInvalidSegment)
	}

	up, err := parent.Navigate(ref.OpParent, "")
	if !cmp.Equal(err, ref.ErrNoParent, cmpopts.EquateErrors()) {
		t.Errorf("parent.Navigate(OpParent) error = %v, want %v", err, ref.ErrNoParent)
	}
	if !up.IsZero() {
		t.Errorf("parent.Navigate(OpParent) = %v, want zero", up)
	}

	root, err := loc.Navigate(ref.OpRoot, "")
	if err != nil {
		t.Fatalf("loc.Navigate(OpRoot) error = %v, want nil", err)
	}
	if !root.Path().IsRoot() || root.Host() != loc.Host() {
		t.Errorf("loc.Navigate(OpRoot) = %v, want root of %v", root, loc)
	}
}

func TestNewLocation(t *testing.T) {
	t.Parallel()

	loc := ref.NewLocation("h", "a/b/").WithQuery("x=1")
	if got, want := loc.String(), "h/a/b?x=1"; got != want {
		t.Errorf("loc.String() = %q, want %q", got, want)
	}
	if !loc.IsValid() {
		t.Error("loc.IsValid() = false, want true")
	}
	if (ref.Location{}).IsValid() {
		t.Error("zero.IsValid() = true, want false")
	}
}

func TestLocation_Format(t *testing.T) {
	t.Parallel()

	loc := ref.MustResolve("coap://h/a?q")
	if got, want := fmt.Sprintf("%s", loc), "h/a?q"; got != want {
		t.Errorf("fmt.Sprintf(\"%%s\", loc) = %q, want %q", got, want)
	}
	if got, want := fmt.Sprintf("%q", loc), `"h/a?q"`; got != want {
		t.Errorf("fmt.Sprintf(\"%%q\", loc) = %q, want %q", got, want)
	}
}

func TestLocation_LogValue(t *testing.T) {
	t.Parallel()

	v := ref.MustResolve("coap://h/a?q").LogValue()
	if got, want := v.Resolve().String(), "[host=h path=/a query=q]"; got != want {
		t.Errorf("loc.LogValue() = %q, want %q", got, want)
	}
}
