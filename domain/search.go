// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

type PredicateKind string

const (
	PredicateFrom      = PredicateKind("from")
	PredicateTo        = PredicateKind("to")
	PredicateSubject   = PredicateKind("subject")
	PredicateBody      = PredicateKind("body")
	PredicateText      = PredicateKind("text")
	PredicateBefore    = PredicateKind("before")
	PredicateSince     = PredicateKind("since")
	PredicateLarger    = PredicateKind("larger")
	PredicateSmaller   = PredicateKind("smaller")
	PredicateFlagged   = PredicateKind("flagged")
	PredicateUnflagged = PredicateKind("unflagged")
	PredicateSeen      = PredicateKind("seen")
	PredicateUnseen    = PredicateKind("unseen")
)

// Predicate is one term of an explicit search. Only the field matching Kind
// is read.
type Predicate struct {
	Kind PredicateKind
	Text string
	Date time.Time
	Size uint32
}

// SearchFilter is built once from a request and not modified afterwards.
type SearchFilter struct {
	Mailbox    string
	UnseenOnly bool
	Since      *time.Time
	Text       string
	Predicates []Predicate
}

// LowerBound returns the explicit lower date bound, either from Since or
// from a since predicate, whichever is later.
func (f *SearchFilter) LowerBound() *time.Time {
	var bound *time.Time
	if f.Since != nil {
		s := *f.Since
		bound = &s
	}
	for _, p := range f.Predicates {
		if p.Kind != PredicateSince {
			continue
		}
		if bound == nil || p.Date.After(*bound) {
			d := p.Date
			bound = &d
		}
	}
	return bound
}
