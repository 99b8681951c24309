package wilddog

import (
	"errors"
	"strconv"

	"github.com/wilddog/wilddog-go/internal/errorutil"
	"github.com/wilddog/wilddog-go/node"
	"github.com/wilddog/wilddog-go/ref"
)

// Code is a result code reported by the SDK to the application.
type Code int

const (
	OK               Code = 0
	ErrNull          Code = -1
	ErrInvalid       Code = -2
	ErrSend          Code = -3
	ErrObserve       Code = -4
	ErrSocket        Code = -5
	ErrNotAuth       Code = -7
	ErrQueueFull     Code = -8
	ErrMaxRetransmit Code = -9
)

var codeNames = map[Code]string{
	OK:               "OK",
	ErrNull:          "NULL",
	ErrInvalid:       "INVALID",
	ErrSend:          "SENDERR",
	ErrObserve:       "OBSERVEERR",
	ErrSocket:        "SOCKETERR",
	ErrNotAuth:       "NOTAUTH",
	ErrQueueFull:     "QUEUEFULL",
	ErrMaxRetransmit: "MAXRETRAN",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "CODE(" + strconv.Itoa(int(c)) + ")"
}

// Error implements the error interface, so codes can be returned and matched as errors.
func (c Code) Error() string { return "wilddog: " + c.String() }

// CodeOf maps an error returned by the module packages to the result code.
//
//   - nil maps to [OK];
//   - a [Code] anywhere in the chain is returned as is;
//   - nil nodes and missing node values map to [ErrNull];
//   - malformed locators and JSON, invalid segments and node values,
//     missing parents and invalid arguments map to [ErrInvalid];
//   - network errors map to [ErrSocket];
//   - any other error is a failure of the output writer and maps to [ErrSend].
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}

	var c Code
	if errors.As(err, &c) {
		return c
	}

	switch {
	case errors.Is(err, node.ErrNilNode), errors.Is(err, node.ErrMissingValue):
		return ErrNull
	case errorutil.IsGrammarErr(err),
		errors.Is(err, errorutil.ErrInvalidArgument),
		errors.Is(err, ref.ErrInvalidSegment),
		errors.Is(err, ref.ErrNoParent),
		errors.Is(err, ref.ErrInvalidOp),
		errors.Is(err, node.ErrInvalidValue),
		errors.Is(err, node.ErrUnknownKind),
		errors.Is(err, node.ErrNotObject),
		errors.Is(err, node.ErrMalformedJSON),
		errors.Is(err, node.ErrUnsupported):
		return ErrInvalid
	case errorutil.IsNetError(err):
		return ErrSocket
	default:
		return ErrSend
	}
}
