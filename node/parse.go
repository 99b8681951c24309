package node

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/goccy/go-json"

	"github.com/wilddog/wilddog-go/internal/errorutil"
)

const (
	// ErrMalformedJSON is returned by [Parse] for invalid JSON text.
	ErrMalformedJSON errorutil.Error = "malformed JSON"
	// ErrUnsupported is returned by [Parse] for JSON values without a node kind (arrays).
	ErrUnsupported errorutil.Error = "unsupported JSON value"
)

func newMalformedJSONErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedJSON, args...) //errtrace:skip
}

// Parse builds a tree from JSON text.
//
// Object members keep the order of the text. Integral numbers become
// [KindInteger] nodes, other numbers [KindFloat] nodes.
// Arrays are rejected with [ErrUnsupported].
func Parse(data []byte) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errtrace.Wrap(newMalformedJSONErr("empty input"))
	}
	if !json.Valid(data) {
		return nil, errtrace.Wrap(newMalformedJSONErr("invalid syntax"))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		root   *Node
		stack  []*Node
		key    string
		hasKey bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errtrace.Wrap(newMalformedJSONErr(err))
		}

		// inside an object every value is preceded by its key
		if len(stack) > 0 && !hasKey {
			switch t := tok.(type) {
			case json.Delim:
				if t == '}' {
					stack = stack[:len(stack)-1]
					continue
				}
			case string:
				key, hasKey = t, true
				continue
			}
			return nil, errtrace.Wrap(newMalformedJSONErr("unexpected token %v", tok))
		}

		n, err := tokenNode(tok)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		if len(stack) == 0 {
			if root != nil {
				return nil, errtrace.Wrap(newMalformedJSONErr("trailing value %v", tok))
			}
			root = n
		} else {
			parent := stack[len(stack)-1]
			parent.members = append(parent.members, Member(key, n))
			hasKey = false
		}
		if n.kind == KindObject {
			stack = append(stack, n)
		}
	}

	if root == nil || len(stack) > 0 {
		return nil, errtrace.Wrap(newMalformedJSONErr("unexpected end of input"))
	}
	return root, nil
}

func tokenNode(tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return Object(), nil
		case '[':
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnsupported, "array"))
		default:
			return nil, errtrace.Wrap(newMalformedJSONErr("unexpected %v", t))
		}
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return errtrace.Wrap2(numberNode(string(t)))
	case float64:
		return Float(t), nil
	default:
		return nil, errtrace.Wrap(newMalformedJSONErr("unexpected token %T", tok))
	}
}

func numberNode(s string) (*Node, error) {
	if !strings.ContainsAny(s, ".eE") {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(v), nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errtrace.Wrap(newMalformedJSONErr(err))
	}
	return Float(v), nil
}
