package driven

import "github.com/scenechat/scenechat/internal/core/domain"

// PersonaStore provides persona instructions for reply generation.
// Implementations may compile the table into the binary, load it from
// a file, or both. Lookups never fail: an unknown name yields a
// synthesised generic instruction.
type PersonaStore interface {
	// Resolve returns the instruction for the named persona. On a miss
	// it returns domain.GenericInstruction(name), never an error.
	Resolve(name string) string

	// Personas lists all registered personas, sorted by name.
	Personas() []domain.Persona

	// Reload re-reads any backing file, discarding cached entries.
	// Useful when the persona table has been edited on disk.
	Reload() error
}
