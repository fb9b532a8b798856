package domain

// ChatReply is the outcome of one orchestrated chat turn.
type ChatReply struct {
	// SessionID echoes the session the turn belongs to.
	SessionID string

	// Persona is the persona name that authored the reply.
	Persona string

	// Text is the generated reply.
	Text string

	// Excerpt is the script excerpt the reply was grounded in.
	// Empty when retrieval is disabled.
	Excerpt string
}

// IndexStats summarises a completed index build.
type IndexStats struct {
	// Chunks is the number of chunks written to the index.
	Chunks int

	// Dimensions is the embedding vector size.
	Dimensions int

	// ModelName is the embedding model used.
	ModelName string
}
