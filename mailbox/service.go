// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/fetch"
	"github.com/CrawX/go-imap-bridge/log"
	"github.com/CrawX/go-imap-bridge/search"

	"github.com/sirupsen/logrus"
)

// Connector opens a fresh logged in connection for one operation.
type Connector func() (domain.ImapConnector, error)

// Service runs each mailbox operation on its own connection. Connections
// are never shared between operations.
type Service struct {
	connect       Connector
	configuration *configuration

	planner    *search.Planner
	aggregator *fetch.Aggregator

	l *logrus.Logger
}

func NewService(connect Connector, configFunc ...ConfigFunc) (*Service, error) {
	config := &configuration{Now: time.Now}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	l := log.Logger(log.LOG_MAILBOX)
	return &Service{
		connect:       connect,
		configuration: config,
		planner:       search.NewPlanner(config.Now, l),
		aggregator:    fetch.NewAggregator(nil, log.Logger(log.LOG_FETCH)),
		l:             l,
	}, nil
}

// session runs f on a new connection with mailbox selected, or nothing
// selected when mailbox is empty. The connection is closed on every path.
// f returns how many items it handled, for the journal.
func (s *Service) session(op, mailbox string, f func(conn domain.ImapConnector) (int, error)) error {
	start := time.Now()
	count, err := s.runSession(op, mailbox, f)
	s.record(op, mailbox, count, err, time.Since(start))
	return err
}

func (s *Service) runSession(op, mailbox string, f func(conn domain.ImapConnector) (int, error)) (int, error) {
	conn, err := s.connect()
	if err != nil {
		if domain.KindOf(err) == domain.KindUnknown {
			err = domain.ConnectionError(op, err)
		}
		return 0, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.l.WithFields(logrus.Fields{"operation": op, "error": err}).Debug("Could not close connection")
		}
	}()

	if len(mailbox) > 0 {
		if _, err := conn.Select(mailbox, false); err != nil {
			if domain.KindOf(err) == domain.KindUnknown {
				err = domain.MailboxError(op, err)
			}
			return 0, err
		}
	}

	count, err := f(conn)
	if err != nil && domain.KindOf(err) == domain.KindUnknown {
		err = domain.ProtocolError(op, err)
	}
	return count, err
}

func (s *Service) record(op, mailbox string, count int, err error, duration time.Duration) {
	fields := logrus.Fields{"operation": op, "mailbox": mailbox, "count": count, "duration": duration}
	if err != nil {
		s.l.WithFields(fields).WithError(err).Warn("Operation failed")
	} else {
		s.l.WithFields(fields).Info("Operation done")
	}

	if s.configuration.Journal == nil {
		return
	}

	entry := domain.JournalEntry{
		Operation: op,
		Mailbox:   mailbox,
		Count:     count,
		Success:   err == nil,
		Duration:  duration,
		At:        s.configuration.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if err := s.configuration.Journal.Record(entry); err != nil {
		s.l.WithError(err).Warn("Could not record operation")
	}
}
