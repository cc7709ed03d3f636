// Package journal records games in a SQLite database: one row per life and
// one row per decided turn.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Life is one game from start to death or exit
type Life struct {
	ID        string
	Character string
	Gender    string
	Race      string
	Align     string
	StartedAt time.Time
	EndedAt   time.Time // zero while running
	Turns     int
	Died      bool
	Message   string // last top-line message
	Dlvl      string
	HP        int
	HPMax     int
	Exp       int
	Money     int
}

// Turn is one decision inside a life
type Turn struct {
	LifeID  string
	Index   int
	Kind    string
	Command string
	Message string
	Dlvl    string
	HP      int
	HPMax   int
	At      time.Time
}

// Store manages the journal database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewStore creates or opens a journal at path.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		dbPath: path,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lives (
		id TEXT PRIMARY KEY,
		character TEXT NOT NULL,
		gender TEXT NOT NULL,
		race TEXT NOT NULL,
		align TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME,
		turns INTEGER NOT NULL DEFAULT 0,
		died INTEGER NOT NULL DEFAULT 0,
		message TEXT,
		dlvl TEXT,
		hp INTEGER,
		hp_max INTEGER,
		exp INTEGER,
		money INTEGER
	);

	CREATE TABLE IF NOT EXISTS turns (
		life_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		kind TEXT NOT NULL,
		command TEXT NOT NULL,
		message TEXT,
		dlvl TEXT,
		hp INTEGER,
		hp_max INTEGER,
		at DATETIME NOT NULL,
		PRIMARY KEY (life_id, idx),
		FOREIGN KEY (life_id) REFERENCES lives(id)
	);
	CREATE INDEX IF NOT EXISTS idx_turns_kind ON turns(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// StartLife records the beginning of a life
func (s *Store) StartLife(l Life) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO lives (id, character, gender, race, align, started_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.Character, l.Gender, l.Race, l.Align, l.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to start life %s: %w", l.ID, err)
	}
	return nil
}

// EndLife fills in how a life finished
func (s *Store) EndLife(l Life) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE lives SET ended_at = ?, turns = ?, died = ?, message = ?,
			dlvl = ?, hp = ?, hp_max = ?, exp = ?, money = ?
		WHERE id = ?`,
		l.EndedAt.UTC(), l.Turns, l.Died, l.Message,
		l.Dlvl, l.HP, l.HPMax, l.Exp, l.Money, l.ID)
	if err != nil {
		return fmt.Errorf("failed to end life %s: %w", l.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to end life %s: %w", l.ID, sql.ErrNoRows)
	}
	return nil
}

// RecordTurn appends one turn
func (s *Store) RecordTurn(t Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO turns (life_id, idx, kind, command, message, dlvl, hp, hp_max, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.LifeID, t.Index, t.Kind, t.Command, t.Message, t.Dlvl, t.HP, t.HPMax, t.At.UTC())
	if err != nil {
		return fmt.Errorf("failed to record turn %d: %w", t.Index, err)
	}
	return nil
}

// GetLife loads one life
func (s *Store) GetLife(id string) (*Life, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		l       Life
		ended   sql.NullTime
		message sql.NullString
		dlvl    sql.NullString
		hp      sql.NullInt64
		hpMax   sql.NullInt64
		exp     sql.NullInt64
		money   sql.NullInt64
	)
	err := s.db.QueryRow(`
		SELECT id, character, gender, race, align, started_at, ended_at,
			turns, died, message, dlvl, hp, hp_max, exp, money
		FROM lives WHERE id = ?`, id).Scan(
		&l.ID, &l.Character, &l.Gender, &l.Race, &l.Align, &l.StartedAt, &ended,
		&l.Turns, &l.Died, &message, &dlvl, &hp, &hpMax, &exp, &money)
	if err != nil {
		return nil, fmt.Errorf("failed to load life %s: %w", id, err)
	}
	l.EndedAt = ended.Time
	l.Message = message.String
	l.Dlvl = dlvl.String
	l.HP = int(hp.Int64)
	l.HPMax = int(hpMax.Int64)
	l.Exp = int(exp.Int64)
	l.Money = int(money.Int64)
	return &l, nil
}

// Turns lists a life's turns in order
func (s *Store) Turns(lifeID string) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT life_id, idx, kind, command, message, dlvl, hp, hp_max, at
		FROM turns WHERE life_id = ? ORDER BY idx`, lifeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var (
			t       Turn
			message sql.NullString
			dlvl    sql.NullString
		)
		if err := rows.Scan(&t.LifeID, &t.Index, &t.Kind, &t.Command, &message,
			&dlvl, &t.HP, &t.HPMax, &t.At); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Message = message.String
		t.Dlvl = dlvl.String
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
