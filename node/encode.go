package node

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"strconv"

	"braces.dev/errtrace"
	"github.com/goccy/go-json"

	"github.com/wilddog/wilddog-go/internal/errorutil"
	"github.com/wilddog/wilddog-go/internal/ioutil"
	"github.com/wilddog/wilddog-go/internal/util"
	"github.com/wilddog/wilddog-go/log"
)

// EncoderOptions are options of the [Encoder].
type EncoderOptions struct {
	// FixedFloats renders floats with six decimals, like C's "%f" does.
	// By default the shortest representation that round-trips is used.
	FixedFloats bool
	// Logger is used to report encoding failures.
	// If nil, the [log.Default] is used.
	Logger *slog.Logger
}

func (o *EncoderOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *EncoderOptions) fixedFloats() bool { return o != nil && o.FixedFloats }

// Encoder writes trees as JSON text to an output writer.
type Encoder struct {
	w    io.Writer
	opts EncoderOptions
	log  *slog.Logger
}

// NewEncoder creates an encoder writing to w.
// Options are optional, default options are used if nil (see [EncoderOptions]).
func NewEncoder(w io.Writer, opts *EncoderOptions) *Encoder {
	enc := &Encoder{w: w, log: opts.log()}
	if opts != nil {
		enc.opts = *opts
	}
	return enc
}

// Encode writes the JSON text of the tree rooted at n.
//
// The tree is rendered into an internal buffer first,
// nothing is written to the output when the tree can not be encoded.
func (enc *Encoder) Encode(n *Node) error {
	if enc.w == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil writer"))
	}

	buf := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(buf)

	if err := enc.encode(buf, n); err != nil {
		return errtrace.Wrap(err)
	}
	if _, err := enc.w.Write(buf.Bytes()); err != nil {
		enc.log.Debug("failed to write encoded node", "node", n, "error", err)
		return errtrace.Wrap(err)
	}
	return nil
}

func (enc *Encoder) encode(buf *bytes.Buffer, n *Node) error {
	cw := ioutil.GetCountingWriter(buf)
	defer ioutil.FreeCountingWriter(cw)

	renderTree(cw, n, enc.opts.fixedFloats())
	if err := cw.Err(); err != nil {
		enc.log.Debug("failed to encode node", "node", n, "error", err)
		return errtrace.Wrap(err)
	}
	return nil
}

// Serialize returns the JSON text of the tree rooted at n.
//
// An object root is rendered as "{...}" with its own key ignored.
// A scalar root is rendered as is, including its key if it has one.
// Members of objects are rendered as "key":value pairs in insertion order.
//
// No partial text is returned on error.
func Serialize(n *Node) ([]byte, error) {
	buf := util.GetBytesBuffer()
	defer util.FreeBytesBuffer(buf)

	if err := (&Encoder{log: log.Default()}).encode(buf, n); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

type frame struct {
	members []*Node
	next    int
}

// renderTree walks the tree with an explicit stack.
// Errors are recorded on cw, which stops any further output.
func renderTree(cw *ioutil.CountingWriter, root *Node, fixedFloats bool) {
	if root == nil {
		cw.Fail(ErrNilNode)
		return
	}
	if root.kind != KindObject {
		renderMember(cw, root, fixedFloats)
		return
	}

	cw.WriteByte('{') //nolint:errcheck
	stack := []frame{{members: root.members}}
	for len(stack) > 0 && cw.Err() == nil {
		top := &stack[len(stack)-1]
		if top.next == len(top.members) {
			cw.WriteByte('}') //nolint:errcheck
			stack = stack[:len(stack)-1]
			continue
		}

		m := top.members[top.next]
		if top.next > 0 {
			cw.WriteByte(',') //nolint:errcheck
		}
		top.next++

		if m == nil {
			cw.Fail(ErrNilNode)
			return
		}
		if m.kind == KindObject {
			renderKey(cw, m)
			cw.WriteByte('{') //nolint:errcheck
			stack = append(stack, frame{members: m.members})
			continue
		}
		renderMember(cw, m, fixedFloats)
	}
}

func renderMember(cw *ioutil.CountingWriter, n *Node, fixedFloats bool) {
	renderKey(cw, n)
	renderScalar(cw, n, fixedFloats)
}

func renderKey(cw *ioutil.CountingWriter, n *Node) {
	if !n.keyed {
		return
	}
	renderString(cw, n.key)
	cw.WriteByte(':') //nolint:errcheck
}

func renderScalar(cw *ioutil.CountingWriter, n *Node, fixedFloats bool) {
	switch n.kind {
	case KindFalse:
		cw.WriteString("false") //nolint:errcheck
	case KindTrue:
		cw.WriteString("true") //nolint:errcheck
	case KindNull:
		cw.WriteString("null") //nolint:errcheck
	case KindInteger:
		v, err := intValue(n)
		if err != nil {
			cw.Fail(err)
			return
		}
		cw.WriteString(strconv.FormatInt(v, 10)) //nolint:errcheck
	case KindFloat:
		v, err := floatValue(n)
		if err != nil {
			cw.Fail(err)
			return
		}
		if fixedFloats {
			cw.WriteString(strconv.FormatFloat(v, 'f', 6, 64)) //nolint:errcheck
		} else {
			cw.WriteString(strconv.FormatFloat(v, 'f', -1, 64)) //nolint:errcheck
		}
	case KindByteArray:
		v, ok := n.value.([]byte)
		if !ok {
			cw.Fail(valueErr(n))
			return
		}
		renderHex(cw, v)
	case KindUTF8String:
		switch v := n.value.(type) {
		case string:
			renderString(cw, v)
		case []byte:
			renderString(cw, string(v))
		default:
			cw.Fail(valueErr(n))
		}
	default:
		cw.Fail(errorutil.NewWrapperError(ErrUnknownKind, "%d", uint8(n.kind)))
	}
}

func intValue(n *Node) (int64, error) {
	switch v := n.value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	default:
		return 0, valueErr(n) //errtrace:skip
	}
}

func floatValue(n *Node) (float64, error) {
	var v float64
	switch fv := n.value.(type) {
	case float64:
		v = fv
	case float32:
		v = float64(fv)
	default:
		return 0, valueErr(n) //errtrace:skip
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errorutil.NewWrapperError(ErrInvalidValue, "float %v", v) //errtrace:skip
	}
	return v, nil
}

func valueErr(n *Node) error {
	if n.value == nil {
		return errorutil.NewWrapperError(ErrMissingValue, "%s node %q", n.kind, n.key) //errtrace:skip
	}
	return errorutil.NewWrapperError(ErrInvalidValue, "%T for %s node %q", n.value, n.kind, n.key) //errtrace:skip
}

func renderString(cw *ioutil.CountingWriter, s string) {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		cw.Fail(err)
		return
	}
	cw.Write(b) //nolint:errcheck
}

const hexDigits = "0123456789abcdef"

// renderHex writes the bytes as a quoted list of space separated hex pairs.
func renderHex(cw *ioutil.CountingWriter, b []byte) {
	out := make([]byte, 0, 2+3*len(b))
	out = append(out, '"')
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	out = append(out, '"')
	cw.Write(out) //nolint:errcheck
}
