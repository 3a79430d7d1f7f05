// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/maayanb/kindrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the roster and drill statistics.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS people (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			parents TEXT NOT NULL,
			siblings TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS leitner_cards (
			person_id TEXT PRIMARY KEY,
			box INTEGER NOT NULL,
			last_seen INTEGER NOT NULL,
			correct_streak INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS person_stats (
			person_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			times_asked INTEGER NOT NULL,
			times_correct INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS overall (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			total_sessions INTEGER NOT NULL,
			total_questions INTEGER NOT NULL,
			total_correct INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			ended_at INTEGER NOT NULL,
			mode TEXT NOT NULL,
			questions INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			best_streak INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRoster replaces the stored roster with the given people, keeping
// their order.
func (s *Store) SaveRoster(ctx context.Context, people []model.Person) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM people`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO people (id, position, name, parents, siblings) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, p := range people {
		parents, jerr := json.Marshal(p.Parents)
		if jerr != nil {
			err = jerr
			return err
		}
		siblings, jerr := json.Marshal(p.Siblings)
		if jerr != nil {
			err = jerr
			return err
		}
		if _, err = stmt.ExecContext(ctx, p.ID, i, p.Name, string(parents), string(siblings)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadRoster returns the stored roster in order. Rows with malformed
// family lists are kept with empty lists rather than failing the load.
func (s *Store) LoadRoster(ctx context.Context) ([]model.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parents, siblings FROM people ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		var parents, siblings string
		if err := rows.Scan(&p.ID, &p.Name, &parents, &siblings); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(parents), &p.Parents); err != nil {
			p.Parents = nil
		}
		if err := json.Unmarshal([]byte(siblings), &p.Siblings); err != nil {
			p.Siblings = nil
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return people, nil
}

// LoadOverall returns the durable stats. Absent rows yield zero values.
func (s *Store) LoadOverall(ctx context.Context) (model.OverallStats, error) {
	overall := model.NewOverallStats()

	row := s.db.QueryRowContext(ctx,
		`SELECT total_sessions, total_questions, total_correct FROM overall WHERE id = 1`)
	err := row.Scan(&overall.TotalSessions, &overall.TotalQuestions, &overall.TotalCorrect)
	if err != nil && err != sql.ErrNoRows {
		return overall, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, name, times_asked, times_correct FROM person_stats`)
	if err != nil {
		return overall, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for rows.Next() {
		var ps model.PersonStats
		if err := rows.Scan(&ps.PersonID, &ps.Name, &ps.TimesAsked, &ps.TimesCorrect); err != nil {
			return overall, err
		}
		if ps.TimesAsked > 0 {
			ps.Accuracy = float64(ps.TimesCorrect) / float64(ps.TimesAsked) * 100
		}
		overall.PersonStats[ps.PersonID] = ps
	}
	if err := rows.Err(); err != nil {
		return overall, err
	}

	cardRows, err := s.db.QueryContext(ctx,
		`SELECT person_id, box, last_seen, correct_streak FROM leitner_cards`)
	if err != nil {
		return overall, err
	}
	defer func() {
		if cerr := cardRows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	for cardRows.Next() {
		var card model.LeitnerCard
		if err := cardRows.Scan(&card.PersonID, &card.Box, &card.LastSeen, &card.CorrectStreak); err != nil {
			return overall, err
		}
		overall.LeitnerCards[card.PersonID] = card
	}
	if err := cardRows.Err(); err != nil {
		return overall, err
	}
	return overall, nil
}

// SaveOverall replaces the durable stats with the given snapshot.
func (s *Store) SaveOverall(ctx context.Context, overall model.OverallStats) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO overall (id, total_sessions, total_questions, total_correct)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			total_sessions = excluded.total_sessions,
			total_questions = excluded.total_questions,
			total_correct = excluded.total_correct`,
		overall.TotalSessions, overall.TotalQuestions, overall.TotalCorrect); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM person_stats`); err != nil {
		return err
	}
	for _, ps := range overall.PersonStats {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO person_stats (person_id, name, times_asked, times_correct) VALUES (?, ?, ?, ?)`,
			ps.PersonID, ps.Name, ps.TimesAsked, ps.TimesCorrect); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM leitner_cards`); err != nil {
		return err
	}
	for _, card := range overall.LeitnerCards {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO leitner_cards (person_id, box, last_seen, correct_streak) VALUES (?, ?, ?, ?)`,
			card.PersonID, card.Box, card.LastSeen, card.CorrectStreak); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// InsertSession stores one finished session in the history table.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (ended_at, mode, questions, correct, best_streak, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.EndedAt, rec.Mode, rec.Questions, rec.Correct, rec.BestStreak, rec.DurationMs)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns the session history, oldest first.
func (s *Store) ListSessions(ctx context.Context) ([]model.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ended_at, mode, questions, correct, best_streak, duration_ms
		 FROM sessions ORDER BY ended_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		if err := rows.Scan(&rec.SessionID, &rec.EndedAt, &rec.Mode, &rec.Questions,
			&rec.Correct, &rec.BestStreak, &rec.DurationMs); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ResetStats clears all statistics and Leitner state, keeping the
// roster.
func (s *Store) ResetStats(ctx context.Context) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()
	for _, stmt := range []string{
		`DELETE FROM person_stats`,
		`DELETE FROM leitner_cards`,
		`DELETE FROM sessions`,
		`DELETE FROM overall`,
	} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}
