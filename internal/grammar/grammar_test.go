package grammar_test

import (
	"testing"

	"github.com/wilddog/wilddog-go/internal/grammar"
)

func TestIsScheme(t *testing.T) {
	t.Parallel()

	cases := []struct {
		str  string
		want bool
	}{
		{"", false},
		{"coap", true},
		{"HTTPS", true},
		{"svn+ssh", true},
		{"x-wd.v1", false},
		{"a.b-c+d", true},
		{"co ap", false},
		{"coap:", false},
		{"http2", false},
	}

	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			t.Parallel()

			if got, want := grammar.IsScheme(c.str), c.want; got != want {
				t.Errorf("grammar.IsScheme(%q) = %v, want %v", c.str, got, want)
			}
		})
	}
}

func TestError_Grammar(t *testing.T) {
	t.Parallel()

	if !grammar.ErrMalformedInput.Grammar() {
		t.Error("grammar.ErrMalformedInput.Grammar() = false, want true")
	}
	if got, want := grammar.ErrEmptyInput.Error(), "empty input"; got != want {
		t.Errorf("grammar.ErrEmptyInput.Error() = %q, want %q", got, want)
	}
}
