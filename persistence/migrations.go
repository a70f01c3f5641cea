// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import migrate "github.com/rubenv/sql-migrate"

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_journal",
			Up: []string{
				`CREATE TABLE journal (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					operation TEXT NOT NULL,
					mailbox TEXT NOT NULL DEFAULT '',
					count INTEGER NOT NULL DEFAULT 0,
					success BOOLEAN NOT NULL,
					error TEXT NOT NULL DEFAULT '',
					duration_ms INTEGER NOT NULL,
					at DATETIME NOT NULL
				)`,
				`CREATE INDEX journal_at ON journal (at)`,
			},
			Down: []string{
				`DROP INDEX journal_at`,
				`DROP TABLE journal`,
			},
		},
	},
}
