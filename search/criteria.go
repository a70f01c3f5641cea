// SPDX-License-Identifier: GPL-3.0-or-later
package search

import (
	"fmt"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"

	"github.com/emersion/go-imap"
)

// Criteria folds the filter into an imap search. It performs no I/O; the
// planner adds the window bound on top of it.
func Criteria(filter *domain.SearchFilter) (*imap.SearchCriteria, error) {
	criteria := imap.NewSearchCriteria()

	if filter.UnseenOnly {
		criteria.WithoutFlags = appendUnique(criteria.WithoutFlags, imap.SeenFlag)
	}

	if len(filter.Text) > 0 {
		criteria.Text = append(criteria.Text, filter.Text)
	}

	if bound := filter.LowerBound(); bound != nil {
		criteria.Since = *bound
	}

	for i, p := range filter.Predicates {
		if err := applyPredicate(criteria, p); err != nil {
			return nil, domain.ValidationError("search", domain.FieldViolation{
				Field:   fmt.Sprintf("criteria[%d]", i),
				Message: err.Error(),
			})
		}
	}

	return criteria, nil
}

func applyPredicate(c *imap.SearchCriteria, p domain.Predicate) error {
	switch p.Kind {
	case domain.PredicateFrom:
		return addHeader(c, "From", p.Text)
	case domain.PredicateTo:
		return addHeader(c, "To", p.Text)
	case domain.PredicateSubject:
		return addHeader(c, "Subject", p.Text)
	case domain.PredicateBody:
		if len(p.Text) == 0 {
			return fmt.Errorf("body predicate needs a value")
		}
		c.Body = append(c.Body, p.Text)
	case domain.PredicateText:
		if len(p.Text) == 0 {
			return fmt.Errorf("text predicate needs a value")
		}
		c.Text = append(c.Text, p.Text)
	case domain.PredicateBefore:
		if p.Date.IsZero() {
			return fmt.Errorf("before predicate needs a date")
		}
		if c.Before.IsZero() || p.Date.Before(c.Before) {
			c.Before = p.Date
		}
	case domain.PredicateSince:
		// already merged into the lower bound
		if p.Date.IsZero() {
			return fmt.Errorf("since predicate needs a date")
		}
	case domain.PredicateLarger:
		if p.Size > c.Larger {
			c.Larger = p.Size
		}
	case domain.PredicateSmaller:
		if p.Size == 0 {
			return fmt.Errorf("smaller predicate needs a size above 0")
		}
		if c.Smaller == 0 || p.Size < c.Smaller {
			c.Smaller = p.Size
		}
	case domain.PredicateFlagged:
		c.WithFlags = appendUnique(c.WithFlags, imap.FlaggedFlag)
	case domain.PredicateUnflagged:
		c.WithoutFlags = appendUnique(c.WithoutFlags, imap.FlaggedFlag)
	case domain.PredicateSeen:
		c.WithFlags = appendUnique(c.WithFlags, imap.SeenFlag)
	case domain.PredicateUnseen:
		c.WithoutFlags = appendUnique(c.WithoutFlags, imap.SeenFlag)
	default:
		return fmt.Errorf("unknown predicate %q", p.Kind)
	}

	return nil
}

func addHeader(c *imap.SearchCriteria, key, value string) error {
	if len(value) == 0 {
		return fmt.Errorf("%s predicate needs a value", key)
	}
	c.Header.Add(key, value)
	return nil
}

// MessageIdCriteria matches messages whose Message-ID header contains id.
// Servers match header searches by substring, so callers compare the
// fetched headers exactly.
func MessageIdCriteria(id string) *imap.SearchCriteria {
	criteria := imap.NewSearchCriteria()
	criteria.Header.Add("Message-Id", id)
	return criteria
}

// AnyMessageIdCriteria ORs MessageIdCriteria for all ids.
func AnyMessageIdCriteria(ids []string) *imap.SearchCriteria {
	if len(ids) == 0 {
		return nil
	}
	if len(ids) == 1 {
		return MessageIdCriteria(ids[0])
	}

	criteria := imap.NewSearchCriteria()
	criteria.Or = [][2]*imap.SearchCriteria{{
		MessageIdCriteria(ids[0]),
		AnyMessageIdCriteria(ids[1:]),
	}}
	return criteria
}

// withSince returns a copy of c bounded below by since.
func withSince(c *imap.SearchCriteria, since time.Time) *imap.SearchCriteria {
	bounded := *c
	bounded.Since = since
	return &bounded
}

func appendUnique(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}
