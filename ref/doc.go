// Package ref resolves URIs into store locations and implements the path algebra
// used to walk the hierarchical store.
//
// A [Location] is resolved once per connection setup:
//
//	loc, err := ref.Resolve("coaps://demo.wilddogio.com/users/alice/")
//	// loc.Host() == "demo.wilddogio.com"
//	// loc.Path() == "/users/alice"
//
// and then navigated with [Location.Parent], [Location.Child] and [Location.Root],
// or with the plain path functions [Key], [Parent], [Root] and [Child]:
//
//	ref.Key("/users/alice")           // "alice"
//	ref.Parent("/users/alice")        // "/users", true
//	ref.Parent("/users")              // "", false
//	ref.Child("/users", "bob")        // "/users/bob", nil
//	ref.Child("/users", "a//b")       // "", ErrInvalidSegment
//
// The root "/" is its own parent, while a first level path like "/users"
// has none. [Navigate] reports the latter with [ErrNoParent].
package ref
