package errorutil

import (
	"errors"
	"net"
	"syscall"
)

// IsGrammarErr returns true if the error is a grammar error.
func IsGrammarErr(err error) bool {
	var e interface{ Grammar() bool }
	return errors.As(err, &e) && e.Grammar()
}

// IsNetError returns true if the error comes from the network stack.
func IsNetError(err error) bool {
	var e net.Error
	return errors.Is(err, syscall.ECONNREFUSED) || errors.As(err, &e)
}
