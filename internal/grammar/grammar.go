// Package grammar contains the lexical rules of generic URIs shared by the parsers.
package grammar

import (
	"github.com/ghettovoice/abnf"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

// scheme = 1*( ALPHA / "+" / "-" / "." )
//
// RFC 3986 also allows DIGIT after the first character,
// the store endpoints never use them and the parser keeps the stricter set.
var scheme = abnf.Repeat1Inf(
	"scheme",
	abnf.Alt(
		"scheme-char",
		abnf.Range("%x41-5A", []byte{0x41}, []byte{0x5A}),
		abnf.Range("%x61-7A", []byte{0x61}, []byte{0x7A}),
		abnf.Range(`"+"`, []byte{'+'}, []byte{'+'}),
		abnf.Range(`"-"`, []byte{'-'}, []byte{'-'}),
		abnf.Range(`"."`, []byte{'.'}, []byte{'.'}),
	),
)

// IsScheme reports whether s is a non-empty URI scheme token.
func IsScheme[T ~string | ~[]byte](s T) bool {
	if len(s) == 0 {
		return false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := scheme([]byte(s), 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}
