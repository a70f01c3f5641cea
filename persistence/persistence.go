// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

// Persistence is the sqlite backed operation journal.
type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

var _ domain.Journal = (*Persistence)(nil)

type dbEntry struct {
	Id         int64
	Operation  string
	Mailbox    string
	Count      int
	Success    bool
	Error      string
	DurationMs int64 `db:"duration_ms"`
	At         time.Time
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Debug("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Debug("Disconnected")
	return nil
}

func (p *Persistence) Record(entry domain.JournalEntry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := p.db.NamedExec(
		`INSERT INTO journal (operation, mailbox, count, success, error, duration_ms, at)
		VALUES (:operation, :mailbox, :count, :success, :error, :duration_ms, :at)`,
		&dbEntry{
			Operation:  entry.Operation,
			Mailbox:    entry.Mailbox,
			Count:      entry.Count,
			Success:    entry.Success,
			Error:      entry.Error,
			DurationMs: entry.Duration.Milliseconds(),
			At:         at.UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("could not record %s: %w", entry.Operation, err)
	}

	p.l.WithFields(logrus.Fields{
		"operation": entry.Operation,
		"mailbox":   entry.Mailbox,
		"success":   entry.Success,
	}).Debug("Recorded operation")
	return nil
}

// Recent returns the newest entries first.
func (p *Persistence) Recent(limit int) ([]*domain.JournalEntry, error) {
	dbEntries := []dbEntry{}
	err := p.db.Select(
		&dbEntries,
		`SELECT id, operation, mailbox, count, success, error, duration_ms, at FROM journal ORDER BY at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	entries := make([]*domain.JournalEntry, 0, len(dbEntries))
	for _, e := range dbEntries {
		entries = append(
			entries,
			&domain.JournalEntry{
				Id:        e.Id,
				Operation: e.Operation,
				Mailbox:   e.Mailbox,
				Count:     e.Count,
				Success:   e.Success,
				Error:     e.Error,
				Duration:  time.Duration(e.DurationMs) * time.Millisecond,
				At:        e.At,
			},
		)
	}

	return entries, nil
}

// Prune drops entries older than the cutoff and returns how many went away.
func (p *Persistence) Prune(before time.Time) (int64, error) {
	result, err := p.db.Exec("DELETE FROM journal WHERE at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("could not prune journal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get num of affected rows: %w", err)
	}

	return affected, nil
}
