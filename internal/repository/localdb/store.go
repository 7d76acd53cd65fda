// Package localdb serves the repository interfaces from a single JSON file.
// It stands in for Postgres during development; every table is an array of
// records and every write rewrites the whole file.
package localdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

// ErrDuplicate is returned when an insert collides with a unique column.
var ErrDuplicate = fmt.Errorf("localdb: %w", repository.ErrDuplicate)

// Row is a stored record keyed by column name.
type Row map[string]json.RawMessage

// Match selects rows whose columns equal every given value.
type Match map[string]any

type tables map[string][]Row

var defaultTables = []string{"users", "profiles", "posts", "brands", "profile_brands"}

const zeroTime = `"0001-01-01T00:00:00Z"`

type Store struct {
	mu    sync.Mutex
	path  string
	now   func() time.Time
	newID func() string
}

func New(path string) *Store {
	return &Store{
		path:  path,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *Store) load() (tables, error) {
	t := tables{}
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("localdb: read %s: %w", s.path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("localdb: decode %s: %w", s.path, err)
		}
	}
	for _, name := range defaultTables {
		if t[name] == nil {
			t[name] = []Row{}
		}
	}
	return t, nil
}

func (s *Store) save(t tables) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("localdb: encode: %w", err)
	}
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("localdb: mkdir: %w", err)
		}
	}
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("localdb: write: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) view(fn func(t tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.load()
	if err != nil {
		return err
	}
	return fn(t)
}

func (s *Store) update(fn func(t tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	return s.save(t)
}

// Select returns the rows of table matching m. A nil m matches every row.
func (s *Store) Select(table string, m Match) ([]Row, error) {
	want, err := encode(m)
	if err != nil {
		return nil, err
	}
	var out []Row
	err = s.view(func(t tables) error {
		for _, i := range t.find(table, want) {
			out = append(out, t[table][i].clone())
		}
		return nil
	})
	return out, err
}

// Insert appends v to table, assigning an id and timestamps when absent.
func (s *Store) Insert(table string, v any) (Row, error) {
	row, err := encode(v)
	if err != nil {
		return nil, err
	}
	err = s.update(func(t tables) error {
		t.insert(table, s.stamp(row, true))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row.clone(), nil
}

// Update merges patch into every row matching m and returns the updated rows.
func (s *Store) Update(table string, m Match, patch any) ([]Row, error) {
	want, err := encode(m)
	if err != nil {
		return nil, err
	}
	changes, err := encode(patch)
	if err != nil {
		return nil, err
	}
	var out []Row
	err = s.update(func(t tables) error {
		for _, i := range t.find(table, want) {
			row := t[table][i]
			row.merge(s.stamp(changes.clone(), false))
			out = append(out, row.clone())
		}
		return nil
	})
	return out, err
}

// Upsert merges v into the row sharing its conflictKey value, or inserts it.
// An empty conflictKey means "id".
func (s *Store) Upsert(table string, v any, conflictKey string) (Row, error) {
	if conflictKey == "" {
		conflictKey = "id"
	}
	row, err := encode(v)
	if err != nil {
		return nil, err
	}
	key, ok := row[conflictKey]
	if !ok {
		return nil, fmt.Errorf("localdb: upsert into %s without %s", table, conflictKey)
	}
	var out Row
	err = s.update(func(t tables) error {
		if idx := t.find(table, Row{conflictKey: key}); len(idx) > 0 {
			existing := t[table][idx[0]]
			existing.merge(s.stamp(row, false))
			out = existing.clone()
			return nil
		}
		t.insert(table, s.stamp(row, true))
		out = row.clone()
		return nil
	})
	return out, err
}

// Delete removes the rows matching m and reports how many went.
func (s *Store) Delete(table string, m Match) (int, error) {
	want, err := encode(m)
	if err != nil {
		return 0, err
	}
	var n int
	err = s.update(func(t tables) error {
		kept := t[table][:0]
		for _, row := range t[table] {
			if row.matches(want) {
				n++
				continue
			}
			kept = append(kept, row)
		}
		t[table] = kept
		return nil
	})
	return n, err
}

func (s *Store) stamp(row Row, insert bool) Row {
	now, _ := json.Marshal(s.now())
	if insert {
		if id, ok := row["id"]; !ok || isEmpty(id) {
			row["id"], _ = json.Marshal(s.newID())
		}
		if c, ok := row["created_at"]; !ok || isEmpty(c) || string(c) == zeroTime {
			row["created_at"] = now
		}
	}
	row["updated_at"] = now
	return row
}

func (t tables) insert(table string, row Row) {
	t[table] = append(t[table], row)
}

func (t tables) find(table string, want Row) []int {
	var idx []int
	for i, row := range t[table] {
		if row.matches(want) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (r Row) matches(want Row) bool {
	for k, v := range want {
		got, ok := r[k]
		if !ok {
			if isEmpty(v) {
				continue
			}
			return false
		}
		if !sameValue(got, v) {
			return false
		}
	}
	return true
}

func (r Row) merge(patch Row) {
	for k, v := range patch {
		r[k] = v
	}
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func sameValue(a, b json.RawMessage) bool {
	var x, y any
	if json.Unmarshal(a, &x) != nil || json.Unmarshal(b, &y) != nil {
		return false
	}
	return reflect.DeepEqual(x, y)
}

func isEmpty(v json.RawMessage) bool {
	s := string(v)
	return s == "" || s == "null" || s == `""`
}
