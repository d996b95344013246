package polarity

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// cachedRuntime remembers the logits a Runtime produced for each text in a
// SQLite database, and only sends texts it has not seen to the runtime.
type cachedRuntime struct {
	Runtime

	db      *sql.DB
	modelID string
}

// NewCachedRuntime wraps rt with a logits cache stored in the SQLite file at
// path. Entries are keyed by model id, truncation and the text's SHA-256.
func NewCachedRuntime(ctx context.Context, rt Runtime, path, modelID string) (Runtime, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open logits cache: %w", err)
	}

	// A single connection serializes concurrent batches.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS logits (
		model_id TEXT NOT NULL,
		truncate INTEGER NOT NULL,
		text_hash TEXT NOT NULL,
		scores BLOB NOT NULL,
		PRIMARY KEY (model_id, truncate, text_hash)
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate logits cache: %w", err)
	}

	return &cachedRuntime{Runtime: rt, db: db, modelID: modelID}, nil
}

func (c *cachedRuntime) Logits(ctx context.Context, req InferenceRequest) (*mat.Dense, error) {
	if len(req.Texts) == 0 {
		return c.Runtime.Logits(ctx, req)
	}
	cols := len(c.Labels())
	rows := make([][]float64, len(req.Texts))

	var (
		missTexts []string
		missIdx   []int
	)
	for i, text := range req.Texts {
		row, err := c.get(ctx, text, req.Truncation, cols)
		if err != nil {
			return nil, err
		}
		if row == nil {
			missTexts = append(missTexts, text)
			missIdx = append(missIdx, i)
			continue
		}
		rows[i] = row
	}

	Logger().Debug("logits cache", "hits", len(req.Texts)-len(missTexts), "misses", len(missTexts))

	if len(missTexts) > 0 {
		miss := req
		miss.Texts = missTexts
		logits, err := c.Runtime.Logits(ctx, miss)
		if err != nil {
			return nil, err
		}
		if r, n := logits.Dims(); r != len(missTexts) || n != cols {
			return nil, fmt.Errorf("got %dx%d logits for %d texts and %d labels", r, n, len(missTexts), cols)
		}
		if err := c.put(ctx, missTexts, req.Truncation, logits); err != nil {
			return nil, err
		}
		for j, i := range missIdx {
			rows[i] = mat.Row(nil, j, logits)
		}
	}

	out := mat.NewDense(len(rows), cols, nil)
	for i, row := range rows {
		out.SetRow(i, row)
	}
	return out, nil
}

func (c *cachedRuntime) get(ctx context.Context, text string, truncate bool, cols int) ([]float64, error) {
	var blob []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT scores FROM logits WHERE model_id = ? AND truncate = ? AND text_hash = ?",
		c.modelID, truncate, hashText(text)).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read logits cache: %w", err)
	}

	row := deserializeScores(blob)
	if len(row) != cols {
		// Written for a different label set; treat as a miss.
		return nil, nil
	}
	return row, nil
}

func (c *cachedRuntime) put(ctx context.Context, texts []string, truncate bool, logits *mat.Dense) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR REPLACE INTO logits (model_id, truncate, text_hash, scores) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, text := range texts {
		blob := serializeScores(mat.Row(nil, i, logits))
		if _, err := stmt.ExecContext(ctx, c.modelID, truncate, hashText(text), blob); err != nil {
			return fmt.Errorf("failed to cache logits: %w", err)
		}
	}
	return tx.Commit()
}

func (c *cachedRuntime) Close() error {
	return errors.Join(c.Runtime.Close(), c.db.Close())
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// serializeScores converts a float64 slice to little-endian bytes.
func serializeScores(scores []float64) []byte {
	blob := make([]byte, len(scores)*8)
	for i, v := range scores {
		bits := math.Float64bits(v)
		for b := range 8 {
			blob[i*8+b] = byte(bits >> (8 * b))
		}
	}
	return blob
}

// deserializeScores converts bytes back to a float64 slice.
func deserializeScores(blob []byte) []float64 {
	if len(blob) == 0 || len(blob)%8 != 0 {
		return nil
	}
	scores := make([]float64, len(blob)/8)
	for i := range scores {
		var bits uint64
		for b := range 8 {
			bits |= uint64(blob[i*8+b]) << (8 * b)
		}
		scores[i] = math.Float64frombits(bits)
	}
	return scores
}
