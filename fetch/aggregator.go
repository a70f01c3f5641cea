// SPDX-License-Identifier: GPL-3.0-or-later
package fetch

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/mail"

	"github.com/emersion/go-imap"
	"github.com/sirupsen/logrus"
)

// Streamer is the part of a connection the aggregator reads from. ch is
// closed by FetchStream before it returns.
type Streamer interface {
	FetchStream(uids []uint32, items []imap.FetchItem, ch chan *imap.Message) error
}

// BuildFunc turns one raw message into a record.
type BuildFunc func(env mail.Envelope, raw []byte) (*domain.MessageRecord, error)

const (
	messageBuffer = 10
	// ParseConcurrency bounds how many messages of one batch are parsed at
	// the same time.
	ParseConcurrency = 16
)

type Aggregator struct {
	build BuildFunc
	l     *logrus.Logger
}

func NewAggregator(build BuildFunc, l *logrus.Logger) *Aggregator {
	if build == nil {
		build = mail.BuildRecord
	}
	return &Aggregator{build: build, l: l}
}

func bodySection() *imap.BodySectionName {
	return &imap.BodySectionName{Peek: true}
}

// FetchItems are the attributes requested for every message.
func FetchItems() []imap.FetchItem {
	return []imap.FetchItem{
		imap.FetchUid,
		imap.FetchFlags,
		imap.FetchInternalDate,
		imap.FetchRFC822Size,
		bodySection().FetchItem(),
	}
}

// Fetch streams the full messages for uids and parses each one on its own
// goroutine. It returns once all parses have finished and the stream has
// ended. Messages that fail to parse are logged and left out.
func (a *Aggregator) Fetch(s Streamer, uids []uint32) ([]*domain.MessageRecord, error) {
	session := NewSession()
	if len(uids) == 0 {
		session.StreamEnded()
		return session.Wait()
	}

	start := time.Now()
	messages := make(chan *imap.Message, messageBuffer)
	done := make(chan error, 1)
	go func() {
		done <- s.FetchStream(uids, FetchItems(), messages)
	}()

	section := bodySection()
	semaphore := make(chan bool, ParseConcurrency)
	for msg := range messages {
		session.MessageStarted()

		raw, err := readBody(msg, section)
		if err != nil {
			a.l.WithFields(logrus.Fields{"uid": msg.Uid, "error": err}).Warn("Skipping message without body")
			session.MessageFinished(msg.SeqNum, nil)
			continue
		}

		env := mail.Envelope{
			Uid:          msg.Uid,
			SeqNum:       msg.SeqNum,
			Flags:        msg.Flags,
			InternalDate: msg.InternalDate,
			Size:         msg.Size,
		}
		semaphore <- true
		go func() {
			a.parse(session, env, raw)
			<-semaphore
		}()
	}

	err := <-done
	if err != nil {
		session.Fail(domain.ProtocolError("fetch", fmt.Errorf("could not fetch mails: %w", err)))
	} else {
		session.StreamEnded()
	}

	records, err := session.Wait()
	if err != nil {
		return nil, err
	}

	expected, _, _ := session.Counts()
	a.l.WithFields(logrus.Fields{"requested": len(uids), "streamed": expected, "parsed": len(records), "duration": time.Since(start)}).Debug("Fetched batch")
	return records, nil
}

func (a *Aggregator) parse(session *Session, env mail.Envelope, raw []byte) {
	record, err := a.build(env, raw)
	if err != nil {
		a.l.WithFields(logrus.Fields{"uid": env.Uid, "error": err}).Warn("Could not parse message, skipping")
		record = nil
	}
	session.MessageFinished(env.SeqNum, record)
}

func readBody(msg *imap.Message, section *imap.BodySectionName) ([]byte, error) {
	r := msg.GetBody(section)
	if r == nil {
		return nil, fmt.Errorf("server returned no body section")
	}

	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read mail body: %w", err)
	}
	return raw, nil
}
