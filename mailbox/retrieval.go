// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"fmt"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/fetch"
	"github.com/CrawX/go-imap-bridge/log"
	"github.com/CrawX/go-imap-bridge/mail"
	"github.com/CrawX/go-imap-bridge/search"

	"github.com/sirupsen/logrus"
)

const (
	opFetch          = "fetchMessages"
	opSearch         = "searchMessages"
	opAdvancedSearch = "advancedSearch"
	opThread         = "getThread"
	opAttachment     = "getAttachment"
)

// FetchMessages returns the most recent messages, newest first.
func (s *Service) FetchMessages(req FetchRequest) (*MessagesResult, error) {
	v := &validator{}
	limit := v.limit(req.Limit)
	if err := v.err(opFetch); err != nil {
		return nil, err
	}

	return s.searchAndFetch(opFetch, &domain.SearchFilter{
		Mailbox:    mailboxOrDefault(req.Mailbox),
		UnseenOnly: req.UnseenOnly,
		Since:      req.Since,
	}, limit)
}

// SearchMessages is FetchMessages narrowed by a free text match.
func (s *Service) SearchMessages(req SearchRequest) (*MessagesResult, error) {
	v := &validator{}
	limit := v.limit(req.Limit)
	if err := v.err(opSearch); err != nil {
		return nil, err
	}

	return s.searchAndFetch(opSearch, &domain.SearchFilter{
		Mailbox:    mailboxOrDefault(req.Mailbox),
		UnseenOnly: req.UnseenOnly,
		Since:      req.Since,
		Text:       req.Text,
	}, limit)
}

func (s *Service) AdvancedSearch(req AdvancedSearchRequest) (*MessagesResult, error) {
	v := &validator{}
	limit := v.limit(req.Limit)
	if len(req.Criteria) == 0 {
		v.add("criteria", "at least one criterion is required")
	}
	if err := v.err(opAdvancedSearch); err != nil {
		return nil, err
	}

	return s.searchAndFetch(opAdvancedSearch, &domain.SearchFilter{
		Mailbox:    mailboxOrDefault(req.Mailbox),
		Predicates: req.Criteria,
	}, limit)
}

func (s *Service) searchAndFetch(op string, filter *domain.SearchFilter, limit int) (*MessagesResult, error) {
	// malformed predicates are rejected before connecting
	if _, err := search.Criteria(filter); err != nil {
		return nil, err
	}

	var records []*domain.MessageRecord
	err := s.session(op, filter.Mailbox, func(conn domain.ImapConnector) (int, error) {
		uids, err := s.planner.Plan(conn, filter, limit)
		if err != nil {
			return 0, err
		}

		records, err = s.aggregator.Fetch(conn, search.MostRecent(uids, limit))
		if err != nil {
			return 0, err
		}
		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	mail.SortByDate(records, false)
	return &MessagesResult{
		Success:  true,
		Mailbox:  filter.Mailbox,
		Count:    len(records),
		Messages: records,
	}, nil
}

// GetThread returns the messages with the given Message-ID, oldest first,
// together with every identifier they refer to. With ExpandThreads the
// messages carrying those identifiers are included as well.
func (s *Service) GetThread(req ThreadRequest) (*ThreadResult, error) {
	v := &validator{}
	v.notEmpty("messageId", req.MessageId)
	if err := v.err(opThread); err != nil {
		return nil, err
	}

	target := mail.NormalizeId(req.MessageId)
	mailbox := mailboxOrDefault(req.Mailbox)

	var records []*domain.MessageRecord
	var related []string
	err := s.session(opThread, mailbox, func(conn domain.ImapConnector) (int, error) {
		var err error
		records, err = s.fetchByIds(conn, []string{target}, nil)
		if err != nil {
			return 0, err
		}
		related = mail.RelatedIds(target, records)

		if s.configuration.ExpandThreads && len(related) > 1 {
			more, err := s.fetchByIds(conn, related, records)
			if err != nil {
				return 0, err
			}
			s.l.WithFields(logrus.Fields{"messageId": target, "related": len(related), "added": len(more)}).Debug("Expanded thread")
			records = append(records, more...)
			related = mail.RelatedIds(target, records)
		}

		return len(records), nil
	})
	if err != nil {
		return nil, err
	}

	mail.SortByDate(records, true)
	return &ThreadResult{
		Success:    true,
		MessageId:  req.MessageId,
		RelatedIds: related,
		Count:      len(records),
		Messages:   records,
	}, nil
}

// fetchByIds fetches the messages whose Message-ID is one of ids, leaving
// out uids already in known. Header search matches substrings, so the
// fetched ids are compared exactly.
func (s *Service) fetchByIds(conn domain.ImapConnector, ids []string, known []*domain.MessageRecord) ([]*domain.MessageRecord, error) {
	uids, err := conn.Search(search.AnyMessageIdCriteria(ids))
	if err != nil {
		return nil, domain.ProtocolError("search", fmt.Errorf("could not search by message id: %w", err))
	}

	seen := map[uint32]bool{}
	for _, r := range known {
		seen[r.Uid] = true
	}
	missing := []uint32{}
	for _, uid := range uids {
		if !seen[uid] {
			missing = append(missing, uid)
		}
	}

	fetched, err := s.aggregator.Fetch(conn, missing)
	if err != nil {
		return nil, err
	}

	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[mail.NormalizeId(id)] = true
	}
	matches := []*domain.MessageRecord{}
	for _, r := range fetched {
		if wanted[mail.NormalizeId(r.MessageId)] {
			matches = append(matches, r)
		}
	}

	return matches, nil
}

// GetAttachment returns attachment Index of message Uid, base64 encoded.
func (s *Service) GetAttachment(req AttachmentRequest) (*AttachmentResult, error) {
	v := &validator{}
	v.uid(req.Uid)
	if req.Index < 0 {
		v.add("index", "must not be negative")
	}
	if err := v.err(opAttachment); err != nil {
		return nil, err
	}

	// The record only marks the message as streamed; the payload or the
	// extraction error is the result.
	var payload *domain.AttachmentPayload
	var extractErr error
	aggregator := fetch.NewAggregator(func(env mail.Envelope, raw []byte) (*domain.MessageRecord, error) {
		payload, extractErr = mail.ExtractAttachment(raw, req.Index)
		return &domain.MessageRecord{Uid: env.Uid, SeqNum: env.SeqNum}, nil
	}, log.Logger(log.LOG_FETCH))

	mailbox := mailboxOrDefault(req.Mailbox)
	err := s.session(opAttachment, mailbox, func(conn domain.ImapConnector) (int, error) {
		records, err := aggregator.Fetch(conn, []uint32{req.Uid})
		if err != nil {
			return 0, err
		}

		switch {
		case len(records) == 0:
			return 0, domain.NotFoundError(opAttachment, fmt.Errorf("message %d not found in %s", req.Uid, mailbox))
		case extractErr != nil:
			return 0, extractErr
		}
		return 1, nil
	})
	if err != nil {
		return nil, err
	}

	return &AttachmentResult{
		Success:    true,
		Attachment: payload,
	}, nil
}
