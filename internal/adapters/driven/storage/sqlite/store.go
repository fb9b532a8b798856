// Package sqlite persists the index pair in a single SQLite database.
// Keeping chunks and vectors in one file means they cannot drift apart
// on disk: the pair is written in one transaction and validated as a
// unit on load.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scenechat/scenechat/internal/core/domain"
	"github.com/scenechat/scenechat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// DBFileName is the index database file name inside the data directory.
const DBFileName = "index.db"

const schema = `
CREATE TABLE IF NOT EXISTS index_meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	id        INTEGER PRIMARY KEY,
	text      TEXT NOT NULL,
	embedding BLOB NOT NULL
);
`

// Store is a SQLite-backed index pair store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the index database inside dataDir.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)

	// WAL mode for cheap concurrent reads at serve time.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save atomically replaces any previously stored index pair.
func (s *Store) Save(ctx context.Context, idx *driven.StoredIndex) error {
	if len(idx.Chunks) == 0 {
		return domain.ErrEmptyCorpus
	}
	if len(idx.Chunks) != len(idx.Vectors) {
		return fmt.Errorf("%w: %d chunks but %d vectors",
			domain.ErrIndexCorrupt, len(idx.Chunks), len(idx.Vectors))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"chunks", "index_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	meta := map[string]string{
		"model_name": idx.ModelName,
		"dimensions": strconv.Itoa(idx.Dimensions),
		"chunks":     strconv.Itoa(len(idx.Chunks)),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO index_meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("writing meta %s: %w", key, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO chunks (id, text, embedding) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range idx.Chunks {
		if len(idx.Vectors[i]) != idx.Dimensions {
			return fmt.Errorf("%w: vector %d has %d dimensions, expected %d",
				domain.ErrDimensionMismatch, i, len(idx.Vectors[i]), idx.Dimensions)
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Text,
			float32SliceToBytes(idx.Vectors[i])); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads the stored index pair and validates it against its own
// metadata. A database with no metadata row is treated as missing, a
// pair that disagrees with its metadata as corrupt.
func (s *Store) Load(ctx context.Context) (*driven.StoredIndex, error) {
	meta, err := s.readMeta(ctx)
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, domain.ErrIndexMissing
	}

	dimensions, err := strconv.Atoi(meta["dimensions"])
	if err != nil || dimensions <= 0 {
		return nil, fmt.Errorf("%w: bad dimensions metadata %q",
			domain.ErrIndexCorrupt, meta["dimensions"])
	}
	declared, err := strconv.Atoi(meta["chunks"])
	if err != nil || declared <= 0 {
		return nil, fmt.Errorf("%w: bad chunk count metadata %q",
			domain.ErrIndexCorrupt, meta["chunks"])
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, embedding FROM chunks ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	idx := &driven.StoredIndex{
		ModelName:  meta["model_name"],
		Dimensions: dimensions,
	}
	for rows.Next() {
		var (
			chunk domain.Chunk
			blob  []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		vector := bytesToFloat32Slice(blob)
		if len(vector) != dimensions {
			return nil, fmt.Errorf("%w: chunk %d vector has %d dimensions, expected %d",
				domain.ErrIndexCorrupt, chunk.ID, len(vector), dimensions)
		}
		if chunk.ID != len(idx.Chunks) {
			return nil, fmt.Errorf("%w: chunk ids not contiguous at %d",
				domain.ErrIndexCorrupt, chunk.ID)
		}
		idx.Chunks = append(idx.Chunks, chunk)
		idx.Vectors = append(idx.Vectors, vector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	if len(idx.Chunks) == 0 {
		return nil, domain.ErrIndexMissing
	}
	if len(idx.Chunks) != declared {
		return nil, fmt.Errorf("%w: metadata declares %d chunks, found %d",
			domain.ErrIndexCorrupt, declared, len(idx.Chunks))
	}
	return idx, nil
}

// readMeta returns all index_meta rows, or an empty map for a fresh
// database.
func (s *Store) readMeta(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM index_meta")
	if err != nil {
		return nil, fmt.Errorf("querying metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning metadata: %w", err)
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
