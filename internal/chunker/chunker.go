// Package chunker splits a script into fixed-size word chunks.
package chunker

import (
	"strings"

	"github.com/scenechat/scenechat/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 300

// Chunker splits a document into consecutive windows of whole words.
type Chunker struct {
	chunkSize int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in words.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ChunkSize returns the configured words-per-chunk.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Split partitions the document into chunks of exactly chunkSize words
// each; the final chunk may be shorter but is never empty and never
// dropped. Words are whitespace-delimited and re-joined with single
// spaces, so chunk ids and texts are deterministic for a given input.
// An empty or whitespace-only document yields nil.
func (c *Chunker) Split(document string) []domain.Chunk {
	words := strings.Fields(document)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(words)+c.chunkSize-1)/c.chunkSize)
	for start := 0; start < len(words); start += c.chunkSize {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, domain.Chunk{
			ID:   len(chunks),
			Text: strings.Join(words[start:end], " "),
		})
	}
	return chunks
}
