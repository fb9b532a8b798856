package domain

// Persona is a named behavioural profile. The instruction is the system
// prompt that shapes the generation service's reply style.
type Persona struct {
	// Name is the exact lookup key, e.g. "Yoda".
	Name string

	// Instruction is the behavioural system prompt for this persona.
	Instruction string
}

// GenericInstruction synthesises a fallback instruction for a persona
// that has no entry in the registry. Unknown personas are a supported
// path, not an error: any name yields a usable instruction.
func GenericInstruction(name string) string {
	return "You are " + name + ", reply in their style."
}
