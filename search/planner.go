// SPDX-License-Identifier: GPL-3.0-or-later
package search

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

const (
	InitialWindowMonths = 1
	WindowStepMonths    = 1
	MaxWindowMonths     = 12
)

type Searcher interface {
	Search(criteria *imap.SearchCriteria) ([]uint32, error)
}

type Planner struct {
	now func() time.Time
	l   *logrus.Logger
}

func NewPlanner(now func() time.Time, l *logrus.Logger) *Planner {
	if now == nil {
		now = time.Now
	}
	return &Planner{now: now, l: l}
}

// Plan returns the uids matching filter in ascending order. An explicit
// lower date bound is searched exactly once. Without one the window starts
// at InitialWindowMonths and widens by WindowStepMonths until at least limit
// uids match or MaxWindowMonths is reached; only the last result is used.
func (p *Planner) Plan(s Searcher, filter *domain.SearchFilter, limit int) ([]uint32, error) {
	criteria, err := Criteria(filter)
	if err != nil {
		return nil, err
	}

	if filter.LowerBound() != nil {
		uids, err := s.Search(criteria)
		if err != nil {
			return nil, domain.ProtocolError("search", err)
		}
		p.l.WithFields(logrus.Fields{"mailbox": filter.Mailbox, "since": criteria.Since, "matches": len(uids)}).Debug("Searched with explicit bound")
		return uids, nil
	}

	now := p.now()
	var uids []uint32
	for months := InitialWindowMonths; ; months += WindowStepMonths {
		if months > MaxWindowMonths {
			months = MaxWindowMonths
		}

		since := now.AddDate(0, -months, 0)
		uids, err = s.Search(withSince(criteria, since))
		if err != nil {
			return nil, domain.ProtocolError("search", fmt.Errorf("could not search %d month window: %w", months, err))
		}

		p.l.WithFields(logrus.Fields{"mailbox": filter.Mailbox, "months": months, "matches": len(uids), "limit": limit}).Debug("Searched window")
		if len(uids) >= limit || months >= MaxWindowMonths {
			return uids, nil
		}
	}
}

// MostRecent returns the last limit uids of an ascending list.
func MostRecent(uids []uint32, limit int) []uint32 {
	if limit <= 0 {
		return []uint32{}
	}
	if len(uids) <= limit {
		return uids
	}
	return uids[len(uids)-limit:]
}
