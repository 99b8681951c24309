// Package wilddog is the common core of the Wilddog client SDK.
//
// It is split into small packages:
//
//   - [github.com/wilddog/wilddog-go/uri] parses generic URIs into components;
//   - [github.com/wilddog/wilddog-go/ref] resolves store URLs into locations
//     and navigates the store tree (key, parent, root, child);
//   - [github.com/wilddog/wilddog-go/node] builds attributed data trees and
//     renders them as compact JSON;
//   - [github.com/wilddog/wilddog-go/log] provides the slog loggers used across the module.
//
// This package maps errors produced by the others to the result codes
// reported to the application, see [CodeOf].
//
//	loc, err := ref.Resolve("coaps://demo.wilddogio.com/users/alice")
//	if err != nil {
//	    return wilddog.CodeOf(err) // ErrInvalid
//	}
package wilddog

