// Package bindings contains the dynamic-library binding to the native
// pvrecorder audio-capture library.
//
// All of the unsafe surface lives here: opening the shared object at runtime,
// resolving the exported entry points, and marshaling arguments across the C
// ABI. No other package touches raw pointers or symbol addresses. The public
// pkg/pvrecorder package talks to this layer through a small set of methods on
// Library and never sees a symbol address.
//
// The native ABI uses C int for its boolean parameters and return values.
// Every truth value crossing the boundary is therefore transmitted as an
// int32 and converted explicitly; a Go bool is never reinterpreted in place.
//
// Strings returned by the native layer (device names, version) are owned by
// the library. They are copied into Go strings immediately and validated as
// UTF-8; the native pointers are never retained.
package bindings
