// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
)

const (
	DefaultMailbox = "INBOX"
	DraftsMailbox  = "Drafts"

	DefaultLimit = 10
	MaxLimit     = 100
)

// Logical flag names accepted by MarkMessage.
const (
	FlagRead      = "read"
	FlagUnread    = "unread"
	FlagFlagged   = "flagged"
	FlagUnflagged = "unflagged"
)

type FetchRequest struct {
	Mailbox    string
	Limit      int
	UnseenOnly bool
	Since      *time.Time
}

type SearchRequest struct {
	Mailbox    string
	Limit      int
	Text       string
	UnseenOnly bool
	Since      *time.Time
}

type AdvancedSearchRequest struct {
	Mailbox  string
	Limit    int
	Criteria []domain.Predicate
}

type ThreadRequest struct {
	Mailbox   string
	MessageId string
}

type AttachmentRequest struct {
	Mailbox string
	Uid     uint32
	Index   int
}

type MarkRequest struct {
	Mailbox string
	Uid     uint32
	Flag    string
}

type TransferRequest struct {
	Mailbox     string
	Uid         uint32
	Destination string
}

// validator collects field violations of one request.
type validator struct {
	violations []domain.FieldViolation
}

func (v *validator) add(field, message string) {
	v.violations = append(v.violations, domain.FieldViolation{Field: field, Message: message})
}

func (v *validator) notEmpty(field, value string) {
	if len(strings.TrimSpace(value)) == 0 {
		v.add(field, "must not be empty")
	}
}

func (v *validator) uid(uid uint32) {
	if uid == 0 {
		v.add("uid", "must be a positive message uid")
	}
}

// limit applies the default for 0 and caps at MaxLimit.
func (v *validator) limit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 0:
		v.add("limit", "must be at least 1")
		return 0
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

func (v *validator) err(op string) error {
	if len(v.violations) == 0 {
		return nil
	}
	return domain.ValidationError(op, v.violations...)
}

func mailboxOrDefault(name string) string {
	if len(strings.TrimSpace(name)) == 0 {
		return DefaultMailbox
	}
	return name
}
