// Package types contains common interfaces shared by the module packages.
package types

import (
	"io"

	"github.com/google/go-cmp/cmp"
)

// Byteseq represents a generic UTF-8 byte string.
type Byteseq interface {
	~string | ~[]byte
}

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// HidePassword replaces the userinfo password with "***" when rendering.
	HidePassword bool `json:"hide_password,omitempty"`
}

type ValidFlag interface {
	IsValid() bool
}

// IsValid returns true if the value has method `IsValid() bool` and it returns true.
func IsValid(v any) bool {
	vv, ok := v.(ValidFlag)
	return ok && vv.IsValid()
}

type Equalable interface {
	Equal(val any) bool
}

// IsEqual returns true if the values are equal.
// Values implementing [Equalable] are compared with their own Equal method.
func IsEqual(v1, v2 any) bool {
	if e, ok := v1.(Equalable); ok {
		return e.Equal(v2)
	}
	return cmp.Equal(v1, v2)
}

type Cloneable[T any] interface {
	Clone() T
}
