// Package record provides a tolerant accessor over decoded API payloads.
//
// The Mist API occasionally returns values of unexpected shape: a bare string
// where an object was expected, a missing key, a number where a string should
// be. Rather than scattering type assertions through the topology assembler,
// record models every decoded value as a tagged union of Missing, Scalar,
// Mapping and List. Field lookups on a Scalar or Missing value simply yield
// the caller's default, so a malformed record behaves like an empty one and
// the defaulting policy stays at the call site.
package record
