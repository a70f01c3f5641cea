// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "time"

type Address struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address"`
}

func (a Address) String() string {
	if len(a.Name) == 0 {
		return a.Address
	}
	return a.Name + " <" + a.Address + ">"
}

type AttachmentSummary struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

// MessageRecord is the parsed form of one fetched message. It is built once
// and never mutated afterwards.
type MessageRecord struct {
	Uid         uint32              `json:"uid"`
	SeqNum      uint32              `json:"seqNum"`
	From        []Address           `json:"from"`
	To          []Address           `json:"to"`
	Cc          []Address           `json:"cc,omitempty"`
	Subject     string              `json:"subject"`
	Date        time.Time           `json:"date"`
	Text        string              `json:"text"`
	Html        string              `json:"html,omitempty"`
	Flags       []string            `json:"flags"`
	Size        uint32              `json:"size"`
	Attachments []AttachmentSummary `json:"attachments"`
	MessageId   string              `json:"messageId,omitempty"`
	InReplyTo   string              `json:"inReplyTo,omitempty"`
	References  []string            `json:"references,omitempty"`
}

type AttachmentPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	Content     string `json:"content"`
}

type MailboxInfo struct {
	Name       string   `json:"name"`
	Delimiter  string   `json:"delimiter"`
	Attributes []string `json:"attributes,omitempty"`
	SpecialUse string   `json:"specialUse,omitempty"`
}

// Draft is a message composed for the Drafts mailbox or for sending.
type Draft struct {
	From       string
	To         []string
	Cc         []string
	Bcc        []string
	Subject    string
	Body       string
	Html       string
	InReplyTo  string
	References []string
}
