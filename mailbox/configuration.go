// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
)

type ConfigFunc func(c *configuration) error

// ExpandThreads makes GetThread run one more search for every related
// identifier found in the initial matches.
func ExpandThreads() ConfigFunc {
	return func(c *configuration) error {
		c.ExpandThreads = true
		return nil
	}
}

func WithJournal(journal domain.Journal) ConfigFunc {
	return func(c *configuration) error {
		if journal == nil {
			return fmt.Errorf("Journal cannot be nil")
		}
		c.Journal = journal
		return nil
	}
}

func WithSender(sender domain.Sender) ConfigFunc {
	return func(c *configuration) error {
		if sender == nil {
			return fmt.Errorf("Sender cannot be nil")
		}
		c.Sender = sender
		return nil
	}
}

// DefaultFrom is used for drafts and outgoing mail that name no sender.
func DefaultFrom(from string) ConfigFunc {
	return func(c *configuration) error {
		if len(strings.TrimSpace(from)) == 0 {
			return fmt.Errorf("DefaultFrom cannot be empty")
		}
		c.DefaultFrom = from
		return nil
	}
}

func Clock(now func() time.Time) ConfigFunc {
	return func(c *configuration) error {
		if now == nil {
			return fmt.Errorf("Clock cannot be nil")
		}
		c.Now = now
		return nil
	}
}

type configuration struct {
	ExpandThreads bool

	Journal domain.Journal
	Sender  domain.Sender

	DefaultFrom string

	Now func() time.Time
}
