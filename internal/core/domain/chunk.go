package domain

// Chunk represents a fixed-size slice of the reference script.
// Chunks are the indivisible unit of retrieval: the script is split
// once at index-build time and chunks are immutable afterwards.
type Chunk struct {
	// ID is the ordinal position of the chunk in the script.
	// It doubles as the join key into the vector index: the vector
	// stored at position ID was computed from this chunk's text.
	ID int

	// Text is the chunk content, words joined by single spaces.
	Text string
}

// RetrievedChunk is a chunk returned from a similarity search,
// paired with its distance to the query vector.
type RetrievedChunk struct {
	// Chunk is the matched script chunk.
	Chunk Chunk

	// Distance is the Euclidean distance to the query vector.
	// Smaller is more relevant.
	Distance float32
}
