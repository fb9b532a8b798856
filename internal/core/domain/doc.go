// Package domain defines the core business entities for Scenechat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A fixed-size slice of the reference script
//   - Turn: A single message within a conversation
//   - Session: An ongoing conversation with ordered turns
//   - Persona: A named behavioural profile for reply generation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
