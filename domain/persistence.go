// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . Journal

// JournalEntry describes one finished operation. No message content is kept.
type JournalEntry struct {
	Id        int64         `json:"id"`
	Operation string        `json:"operation"`
	Mailbox   string        `json:"mailbox,omitempty"`
	Count     int           `json:"count"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
	At        time.Time     `json:"at"`
}

type Journal interface {
	Close() error
	Record(entry JournalEntry) error
	Recent(limit int) ([]*JournalEntry, error)
}
