// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"github.com/CrawX/go-imap-bridge/domain"
)

type MessagesResult struct {
	Success  bool                    `json:"success"`
	Mailbox  string                  `json:"mailbox"`
	Count    int                     `json:"count"`
	Messages []*domain.MessageRecord `json:"messages"`
}

type ThreadResult struct {
	Success    bool                    `json:"success"`
	MessageId  string                  `json:"messageId"`
	RelatedIds []string                `json:"relatedIds"`
	Count      int                     `json:"count"`
	Messages   []*domain.MessageRecord `json:"messages"`
}

type AttachmentResult struct {
	Success    bool                      `json:"success"`
	Attachment *domain.AttachmentPayload `json:"attachment"`
}

type MailboxesResult struct {
	Success   bool                  `json:"success"`
	Count     int                   `json:"count"`
	Mailboxes []*domain.MailboxInfo `json:"mailboxes"`
}

type MailboxResult struct {
	Success bool   `json:"success"`
	Mailbox string `json:"mailbox"`
}

type MarkResult struct {
	Success bool   `json:"success"`
	Uid     uint32 `json:"uid"`
	Flag    string `json:"flag"`
}

type TransferResult struct {
	Success     bool   `json:"success"`
	Uid         uint32 `json:"uid"`
	Destination string `json:"destination"`
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageId string `json:"messageId"`
	Response  string `json:"response"`
}

type HistoryResult struct {
	Success bool                   `json:"success"`
	Count   int                    `json:"count"`
	Entries []*domain.JournalEntry `json:"entries"`
}

// ErrorResult is what every failed operation reports.
type ErrorResult struct {
	IsError    bool                    `json:"isError"`
	Message    string                  `json:"message"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

func NewErrorResult(err error) *ErrorResult {
	return &ErrorResult{
		IsError:    true,
		Message:    err.Error(),
		Violations: domain.Violations(err),
	}
}

// Respond picks the payload of an operation: the result on success and the
// error shape otherwise.
func Respond(result interface{}, err error) interface{} {
	if err != nil {
		return NewErrorResult(err)
	}
	return result
}
