// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/mail"

	"github.com/emersion/go-imap"
)

const (
	opList    = "listMailboxes"
	opCreate  = "createMailbox"
	opDelete  = "deleteMailbox"
	opMark    = "markMessage"
	opMove    = "moveMessage"
	opCopy    = "copyMessage"
	opDraft   = "saveDraft"
	opSend    = "sendMail"
	opHistory = "history"
)

// specialUses maps RFC 6154 mailbox attributes to the roles reported to
// callers.
var specialUses = map[string]string{
	`\All`:     "all",
	`\Archive`: "archive",
	`\Drafts`:  "drafts",
	`\Flagged`: "flagged",
	`\Junk`:    "junk",
	`\Sent`:    "sent",
	`\Trash`:   "trash",
}

type flagChange struct {
	op   imap.FlagsOp
	flag string
}

var flagChanges = map[string]flagChange{
	FlagRead:      {imap.AddFlags, imap.SeenFlag},
	FlagUnread:    {imap.RemoveFlags, imap.SeenFlag},
	FlagFlagged:   {imap.AddFlags, imap.FlaggedFlag},
	FlagUnflagged: {imap.RemoveFlags, imap.FlaggedFlag},
}

func (s *Service) ListMailboxes() (*MailboxesResult, error) {
	mailboxes := []*domain.MailboxInfo{}
	err := s.session(opList, "", func(conn domain.ImapConnector) (int, error) {
		infos, err := conn.List()
		if err != nil {
			return 0, err
		}

		for _, info := range infos {
			m := &domain.MailboxInfo{
				Name:       info.Name,
				Delimiter:  info.Delimiter,
				Attributes: info.Attributes,
			}
			for _, attr := range info.Attributes {
				if use, ok := specialUses[attr]; ok {
					m.SpecialUse = use
					break
				}
			}
			mailboxes = append(mailboxes, m)
		}
		return len(mailboxes), nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(mailboxes, func(i, j int) bool {
		return mailboxes[i].Name < mailboxes[j].Name
	})
	return &MailboxesResult{
		Success:   true,
		Count:     len(mailboxes),
		Mailboxes: mailboxes,
	}, nil
}

func (s *Service) CreateMailbox(name string) (*MailboxResult, error) {
	v := &validator{}
	v.notEmpty("name", name)
	if err := v.err(opCreate); err != nil {
		return nil, err
	}

	err := s.session(opCreate, "", func(conn domain.ImapConnector) (int, error) {
		return 1, conn.Create(name)
	})
	if err != nil {
		return nil, err
	}

	return &MailboxResult{Success: true, Mailbox: name}, nil
}

func (s *Service) DeleteMailbox(name string) (*MailboxResult, error) {
	v := &validator{}
	v.notEmpty("name", name)
	if strings.EqualFold(strings.TrimSpace(name), DefaultMailbox) {
		v.add("name", "INBOX cannot be deleted")
	}
	if err := v.err(opDelete); err != nil {
		return nil, err
	}

	err := s.session(opDelete, "", func(conn domain.ImapConnector) (int, error) {
		return 1, conn.Delete(name)
	})
	if err != nil {
		return nil, err
	}

	return &MailboxResult{Success: true, Mailbox: name}, nil
}

// MarkMessage sets or clears \Seen or \Flagged. Marking unread removes \Seen.
func (s *Service) MarkMessage(req MarkRequest) (*MarkResult, error) {
	v := &validator{}
	v.uid(req.Uid)
	change, ok := flagChanges[req.Flag]
	if !ok {
		v.add("flag", fmt.Sprintf("must be one of %s, %s, %s, %s, got %q", FlagRead, FlagUnread, FlagFlagged, FlagUnflagged, req.Flag))
	}
	if err := v.err(opMark); err != nil {
		return nil, err
	}

	err := s.session(opMark, mailboxOrDefault(req.Mailbox), func(conn domain.ImapConnector) (int, error) {
		return 1, conn.Store([]uint32{req.Uid}, change.op, []string{change.flag})
	})
	if err != nil {
		return nil, err
	}

	return &MarkResult{Success: true, Uid: req.Uid, Flag: req.Flag}, nil
}

func (s *Service) MoveMessage(req TransferRequest) (*TransferResult, error) {
	return s.transfer(opMove, req, func(conn domain.ImapConnector) error {
		return conn.Move([]uint32{req.Uid}, req.Destination)
	})
}

func (s *Service) CopyMessage(req TransferRequest) (*TransferResult, error) {
	return s.transfer(opCopy, req, func(conn domain.ImapConnector) error {
		return conn.Copy([]uint32{req.Uid}, req.Destination)
	})
}

func (s *Service) transfer(op string, req TransferRequest, f func(conn domain.ImapConnector) error) (*TransferResult, error) {
	v := &validator{}
	v.uid(req.Uid)
	v.notEmpty("destination", req.Destination)
	if err := v.err(op); err != nil {
		return nil, err
	}

	err := s.session(op, mailboxOrDefault(req.Mailbox), func(conn domain.ImapConnector) (int, error) {
		return 1, f(conn)
	})
	if err != nil {
		return nil, err
	}

	return &TransferResult{Success: true, Uid: req.Uid, Destination: req.Destination}, nil
}

func (s *Service) draftWithSender(draft *domain.Draft) *domain.Draft {
	d := *draft
	if len(strings.TrimSpace(d.From)) == 0 {
		d.From = s.configuration.DefaultFrom
	}
	return &d
}

// SaveDraft appends draft to the Drafts mailbox flagged \Draft. Bcc is kept
// in the stored header.
func (s *Service) SaveDraft(draft *domain.Draft) (*MailboxResult, error) {
	d := s.draftWithSender(draft)
	v := &validator{}
	v.notEmpty("from", d.From)
	if err := v.err(opDraft); err != nil {
		return nil, err
	}

	body, err := mail.Compose(d, mail.ComposeOptions{
		Date:       s.configuration.Now(),
		MessageId:  mail.GenerateMessageId(d.From),
		IncludeBcc: true,
	})
	if err != nil {
		return nil, err
	}

	err = s.session(opDraft, "", func(conn domain.ImapConnector) (int, error) {
		return 1, conn.Append(DraftsMailbox, []string{imap.DraftFlag}, body)
	})
	if err != nil {
		return nil, err
	}

	return &MailboxResult{Success: true, Mailbox: DraftsMailbox}, nil
}

// SendMail hands draft to the configured sender. It does not touch the
// imap connection.
func (s *Service) SendMail(draft *domain.Draft) (*SendResult, error) {
	start := s.configuration.Now()
	result, err := s.send(draft)
	count := 0
	if err == nil {
		count = 1
	}
	s.record(opSend, "", count, err, s.configuration.Now().Sub(start))
	if err != nil {
		return nil, err
	}

	return &SendResult{
		Success:   true,
		MessageId: result.MessageId,
		Response:  result.Response,
	}, nil
}

func (s *Service) send(draft *domain.Draft) (*domain.SendResult, error) {
	if s.configuration.Sender == nil {
		return nil, domain.SendError(opSend, fmt.Errorf("no mail transfer configured"))
	}

	result, err := s.configuration.Sender.Send(s.draftWithSender(draft))
	if err != nil {
		if domain.KindOf(err) == domain.KindUnknown {
			err = domain.SendError(opSend, err)
		}
		return nil, err
	}
	return result, nil
}

// History returns the most recent journal entries, newest first. Without
// a journal nothing was recorded and the result is empty.
func (s *Service) History(limit int) (*HistoryResult, error) {
	v := &validator{}
	limit = v.limit(limit)
	if err := v.err(opHistory); err != nil {
		return nil, err
	}

	entries := []*domain.JournalEntry{}
	if s.configuration.Journal != nil {
		var err error
		entries, err = s.configuration.Journal.Recent(limit)
		if err != nil {
			return nil, fmt.Errorf("could not read journal: %w", err)
		}
	}

	return &HistoryResult{
		Success: true,
		Count:   len(entries),
		Entries: entries,
	}, nil
}
