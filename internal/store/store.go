// Package store persists dust cross-section grids in a SQLite file. Each
// dataset is keyed by (category, composition, structure); the axes and the
// dense value array travel together as one gob-encoded, gzip-compressed
// payload so a dataset is either fully present or absent.
package store

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle backing the grid datasets.
type Store struct {
	*sql.DB
}

// GridData is the persisted form of one cross-section dataset. Values is a
// dense row-major array of shape
// [len(Wavelength)][len(Radius)][len(Sigma)].
type GridData struct {
	Wavelength []float64
	Radius     []float64
	Sigma      []float64
	Values     []float64
}

// Validate checks the axis/shape invariants of a dataset before it is
// committed or after it is read back.
func (g *GridData) Validate() error {
	if len(g.Wavelength) == 0 || len(g.Radius) == 0 || len(g.Sigma) == 0 {
		return errors.New("grid axes must be non-empty")
	}
	if want := len(g.Wavelength) * len(g.Radius) * len(g.Sigma); len(g.Values) != want {
		return fmt.Errorf("grid shape mismatch: %d values for %dx%dx%d axes",
			len(g.Values), len(g.Wavelength), len(g.Radius), len(g.Sigma))
	}
	for name, axis := range map[string][]float64{
		"wavelength": g.Wavelength, "radius": g.Radius, "sigma": g.Sigma,
	} {
		for i := 1; i < len(axis); i++ {
			if axis[i] <= axis[i-1] {
				return fmt.Errorf("%s axis not strictly increasing at index %d", name, i)
			}
		}
	}
	return nil
}

// Open opens (creating if needed) the store at path and applies any pending
// schema migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open grid store: %w", err)
	}
	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// PutGrid commits a dataset under (category, composition, structure). The
// insert happens in a single statement, so readers observe either no
// dataset or a complete one. If a concurrent writer committed the same key
// first, the existing dataset is kept and stored reports false.
func (s *Store) PutGrid(category, composition, structure, buildID string, g *GridData) (stored bool, err error) {
	if err := g.Validate(); err != nil {
		return false, fmt.Errorf("refusing to persist grid %s/%s/%s: %w", category, composition, structure, err)
	}

	payload, err := encodeGrid(g)
	if err != nil {
		return false, fmt.Errorf("failed to serialize grid: %w", err)
	}

	res, err := s.Exec(
		`INSERT OR IGNORE INTO grid_datasets
			(category, composition, structure, build_id, n_wavelength, n_radius, n_sigma, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		category, composition, structure, buildID,
		len(g.Wavelength), len(g.Radius), len(g.Sigma), payload,
	)
	if err != nil {
		return false, fmt.Errorf("failed to persist grid %s/%s/%s: %w", category, composition, structure, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetGrid loads the dataset under (category, composition, structure).
// A missing dataset returns (nil, "", nil); the caller decides whether that
// means "build it" or "fail".
func (s *Store) GetGrid(category, composition, structure string) (*GridData, string, error) {
	var payload []byte
	var buildID string
	err := s.QueryRow(
		`SELECT payload, build_id FROM grid_datasets
		 WHERE category = ? AND composition = ? AND structure = ?`,
		category, composition, structure,
	).Scan(&payload, &buildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read grid %s/%s/%s: %w", category, composition, structure, err)
	}

	g, err := decodeGrid(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode grid %s/%s/%s: %w", category, composition, structure, err)
	}
	if err := g.Validate(); err != nil {
		return nil, "", fmt.Errorf("corrupt grid %s/%s/%s: %w", category, composition, structure, err)
	}
	return g, buildID, nil
}

// DeleteGrid removes the dataset under the key, if present. Used by the CLI
// to force a rebuild.
func (s *Store) DeleteGrid(category, composition, structure string) error {
	_, err := s.Exec(
		`DELETE FROM grid_datasets WHERE category = ? AND composition = ? AND structure = ?`,
		category, composition, structure,
	)
	return err
}

// encodeGrid compresses a dataset using gob encoding and gzip compression.
func encodeGrid(g *GridData) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(g); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGrid(payload []byte) (*GridData, error) {
	gz, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var g GridData
	if err := gob.NewDecoder(gz).Decode(&g); err != nil && err != io.EOF {
		return nil, err
	}
	return &g, nil
}
