// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"sort"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
)

// Envelope carries the attributes the server reports alongside a message
// body.
type Envelope struct {
	Uid          uint32
	SeqNum       uint32
	Flags        []string
	InternalDate time.Time
	Size         uint32
}

// BuildRecord parses raw and combines it with the server attributes. A
// message without a parseable Date header is dated by its internal date.
func BuildRecord(env Envelope, raw []byte) (*domain.MessageRecord, error) {
	parsed, err := ParseMessage(raw)
	if err != nil {
		return nil, domain.ParseError("build record", err)
	}

	return NewRecord(env, parsed), nil
}

func NewRecord(env Envelope, parsed *Parsed) *domain.MessageRecord {
	date := parsed.Date
	if date.IsZero() {
		date = env.InternalDate
	}

	flags := env.Flags
	if flags == nil {
		flags = []string{}
	}

	attachments := make([]domain.AttachmentSummary, 0, len(parsed.Attachments))
	for _, a := range parsed.Attachments {
		attachments = append(attachments, domain.AttachmentSummary{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Size:        len(a.Content),
		})
	}

	return &domain.MessageRecord{
		Uid:         env.Uid,
		SeqNum:      env.SeqNum,
		From:        parsed.From,
		To:          parsed.To,
		Cc:          parsed.Cc,
		Subject:     parsed.Subject,
		Date:        date,
		Text:        parsed.Text,
		Html:        parsed.Html,
		Flags:       flags,
		Size:        env.Size,
		Attachments: attachments,
		MessageId:   parsed.MessageId,
		InReplyTo:   parsed.InReplyTo,
		References:  parsed.References,
	}
}

// SortByDate orders records by date, falling back to uid for equal dates so
// the order is stable across runs.
func SortByDate(records []*domain.MessageRecord, ascending bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.Date.Equal(b.Date) {
			if ascending {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if ascending {
			return a.Uid < b.Uid
		}
		return a.Uid > b.Uid
	})
}
