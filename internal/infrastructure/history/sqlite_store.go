package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/axiom-install/internal/domain"
	"github.com/doeshing/axiom-install/internal/pkg/filesystem"
	"github.com/doeshing/axiom-install/internal/ports"
)

// timestampLayout has fixed width so the column sorts chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore persists run history in a SQLite database. Nothing is created
// on disk until the first Save.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore returns a store for the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// ensure selects the backend, opening the database when create is set or a
// database already exists. It reports false when there is nothing to read.
// Callers hold s.mu.
func (s *SQLiteStore) ensure(create bool) bool {
	if s.db != nil || s.fallback != nil {
		return true
	}
	if !create && !filesystem.Exists(s.path) {
		if filesystem.Exists(jsonlPath(s.path)) {
			s.fallback = NewFileStore(jsonlPath(s.path))
			return true
		}
		return false
	}
	s.connect()
	return true
}

// connect opens the database and degrades to a JSON-lines file next to it
// when the database cannot be opened.
func (s *SQLiteStore) connect() {
	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirectoryPermissions); err != nil {
		s.fallback = NewFileStore(jsonlPath(s.path))
		return
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		s.fallback = NewFileStore(jsonlPath(s.path))
		return
	}
	s.db = db
	if err := s.init(); err != nil {
		_ = db.Close()
		s.db = nil
		s.fallback = NewFileStore(jsonlPath(s.path))
	}
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		action TEXT,
		scope TEXT,
		state TEXT,
		binary_path TEXT,
		data_dir TEXT,
		warnings INTEGER
	);`)
	return err
}

// Save inserts a record, assigning an ID and timestamp when missing.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	record = withIdentity(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(true)
	if s.db == nil {
		return s.fallback.Save(record)
	}
	_, err := s.db.Exec(`INSERT INTO runs
		(id, timestamp, action, scope, state, binary_path, data_dir, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(timestampLayout),
		string(record.Action),
		string(record.Scope),
		string(record.State),
		record.BinaryPath,
		record.DataDir,
		record.Warnings,
	)
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Recent implements ports.HistoryRepository.
func (s *SQLiteStore) Recent(limit int) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensure(false) {
		return nil, nil
	}
	if s.db == nil {
		return s.fallback.Recent(limit)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, action, scope, state, binary_path, data_dir, warnings FROM runs")
	builder.WriteString(" ORDER BY timestamp DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts, action, scope, state string
		if err := rows.Scan(&rec.ID, &ts, &action, &scope, &state, &rec.BinaryPath, &rec.DataDir, &rec.Warnings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Action = domain.Action(action)
		rec.Scope = domain.Scope(scope)
		rec.State = domain.RunState(state)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ensure(false) {
		return nil
	}
	if s.db == nil {
		return s.fallback.Clear()
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// ExportJSON writes every record to dest as JSON lines.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Recent(0)
	if err != nil {
		return err
	}
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the active backing file.
func (s *SQLiteStore) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fallback != nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func withIdentity(record domain.HistoryRecord) domain.HistoryRecord {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	return record
}

func jsonlPath(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".jsonl"
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
