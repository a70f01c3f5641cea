// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/mailbox"
)

const dateLayout = "2006-01-02"

type arguments struct {
	config string
	op     string

	mailbox    string
	limit      int
	unseenOnly bool
	since      string
	text       string
	criteria   string

	messageId   string
	uid         uint32
	index       int
	flag        string
	destination string
	name        string

	from       string
	to         string
	cc         string
	bcc        string
	subject    string
	body       string
	html       string
	inReplyTo  string
	references string
}

func (a *arguments) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&a.config, "config", "config.toml", "configuration file")
	fs.StringVar(&a.op, "op", "fetchMessages", "operation to run")

	fs.StringVar(&a.mailbox, "mailbox", "", "mailbox to operate on, INBOX when empty")
	fs.IntVar(&a.limit, "limit", 0, "maximum number of messages or journal entries")
	fs.BoolVar(&a.unseenOnly, "unseen", false, "only unseen messages")
	fs.StringVar(&a.since, "since", "", "lower date bound, "+dateLayout)
	fs.StringVar(&a.text, "text", "", "free text to search for")
	fs.StringVar(&a.criteria, "criteria", "", `advanced search criteria as JSON, e.g. [{"kind":"from","text":"alice"}]`)

	fs.StringVar(&a.messageId, "message-id", "", "Message-ID of a thread member")
	fs.Func("uid", "message uid", func(value string) error {
		uid, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("uid must be an unsigned 32 bit number: %w", err)
		}
		a.uid = uint32(uid)
		return nil
	})
	fs.IntVar(&a.index, "index", 0, "zero based attachment index")
	fs.StringVar(&a.flag, "flag", "", "read, unread, flagged or unflagged")
	fs.StringVar(&a.destination, "destination", "", "target mailbox of move and copy")
	fs.StringVar(&a.name, "name", "", "mailbox to create or delete")

	fs.StringVar(&a.from, "from", "", "sender, the configured sender when empty")
	fs.StringVar(&a.to, "to", "", "comma separated recipients")
	fs.StringVar(&a.cc, "cc", "", "comma separated carbon copy recipients")
	fs.StringVar(&a.bcc, "bcc", "", "comma separated blind carbon copy recipients")
	fs.StringVar(&a.subject, "subject", "", "subject")
	fs.StringVar(&a.body, "body", "", "plain text body")
	fs.StringVar(&a.html, "html", "", "html body")
	fs.StringVar(&a.inReplyTo, "in-reply-to", "", "Message-ID the mail answers")
	fs.StringVar(&a.references, "references", "", "comma separated Message-IDs of the thread")
	return fs
}

type criterion struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Date string `json:"date"`
	Size uint32 `json:"size"`
}

func parseCriteria(s string) ([]domain.Predicate, error) {
	if len(strings.TrimSpace(s)) == 0 {
		return nil, nil
	}

	criteria := []criterion{}
	if err := json.Unmarshal([]byte(s), &criteria); err != nil {
		return nil, domain.ValidationError("advancedSearch", domain.FieldViolation{Field: "criteria", Message: err.Error()})
	}

	predicates := make([]domain.Predicate, 0, len(criteria))
	for i, c := range criteria {
		p := domain.Predicate{
			Kind: domain.PredicateKind(c.Kind),
			Text: c.Text,
			Size: c.Size,
		}
		if len(c.Date) > 0 {
			d, err := time.Parse(dateLayout, c.Date)
			if err != nil {
				return nil, domain.ValidationError("advancedSearch", domain.FieldViolation{Field: fmt.Sprintf("criteria[%d].date", i), Message: err.Error()})
			}
			p.Date = d
		}
		predicates = append(predicates, p)
	}
	return predicates, nil
}

func parseSince(s string) (*time.Time, error) {
	if len(s) == 0 {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.ValidationError("since", domain.FieldViolation{Field: "since", Message: err.Error()})
	}
	return &d, nil
}

func splitList(s string) []string {
	list := []string{}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); len(v) > 0 {
			list = append(list, v)
		}
	}
	return list
}

func (a *arguments) draft() *domain.Draft {
	return &domain.Draft{
		From:       a.from,
		To:         splitList(a.to),
		Cc:         splitList(a.cc),
		Bcc:        splitList(a.bcc),
		Subject:    a.subject,
		Body:       a.body,
		Html:       a.html,
		InReplyTo:  a.inReplyTo,
		References: splitList(a.references),
	}
}

// run executes the requested operation and returns the JSON payload and
// whether it failed.
func run(s *mailbox.Service, a *arguments) (interface{}, bool) {
	result, err := dispatch(s, a)
	return mailbox.Respond(result, err), err != nil
}

func dispatch(s *mailbox.Service, a *arguments) (interface{}, error) {
	since, err := parseSince(a.since)
	if err != nil {
		return nil, err
	}

	switch a.op {
	case "fetchMessages":
		return s.FetchMessages(mailbox.FetchRequest{Mailbox: a.mailbox, Limit: a.limit, UnseenOnly: a.unseenOnly, Since: since})
	case "searchMessages":
		return s.SearchMessages(mailbox.SearchRequest{Mailbox: a.mailbox, Limit: a.limit, Text: a.text, UnseenOnly: a.unseenOnly, Since: since})
	case "advancedSearch":
		criteria, err := parseCriteria(a.criteria)
		if err != nil {
			return nil, err
		}
		return s.AdvancedSearch(mailbox.AdvancedSearchRequest{Mailbox: a.mailbox, Limit: a.limit, Criteria: criteria})
	case "getThread":
		return s.GetThread(mailbox.ThreadRequest{Mailbox: a.mailbox, MessageId: a.messageId})
	case "getAttachment":
		return s.GetAttachment(mailbox.AttachmentRequest{Mailbox: a.mailbox, Uid: a.uid, Index: a.index})
	case "listMailboxes":
		return s.ListMailboxes()
	case "createMailbox":
		return s.CreateMailbox(a.name)
	case "deleteMailbox":
		return s.DeleteMailbox(a.name)
	case "markMessage":
		return s.MarkMessage(mailbox.MarkRequest{Mailbox: a.mailbox, Uid: a.uid, Flag: a.flag})
	case "moveMessage":
		return s.MoveMessage(mailbox.TransferRequest{Mailbox: a.mailbox, Uid: a.uid, Destination: a.destination})
	case "copyMessage":
		return s.CopyMessage(mailbox.TransferRequest{Mailbox: a.mailbox, Uid: a.uid, Destination: a.destination})
	case "saveDraft":
		return s.SaveDraft(a.draft())
	case "sendMail":
		return s.SendMail(a.draft())
	case "history":
		return s.History(a.limit)
	}

	return nil, domain.ValidationError("dispatch", domain.FieldViolation{Field: "op", Message: fmt.Sprintf("unknown operation %q", a.op)})
}
