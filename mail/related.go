// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import "github.com/CrawX/go-imap-bridge/domain"

// RelatedIds accumulates the identifiers a thread is made of: the target,
// then every record's own Message-ID, In-Reply-To and References entries.
// Identifiers are compared without angle brackets and kept in first-seen
// order.
func RelatedIds(target string, records []*domain.MessageRecord) []string {
	seen := map[string]bool{}
	ids := []string{}
	add := func(id string) {
		id = trimId(id)
		if len(id) == 0 || seen[id] {
			return
		}
		seen[id] = true
		ids = append(ids, id)
	}

	add(target)
	for _, r := range records {
		add(r.MessageId)
		add(r.InReplyTo)
		for _, ref := range r.References {
			add(ref)
		}
	}

	return ids
}

// NormalizeId strips whitespace and angle brackets from a Message-ID.
func NormalizeId(id string) string {
	return trimId(id)
}
