// SPDX-License-Identifier: GPL-3.0-or-later
package fetch

import (
	"sort"
	"sync"

	"github.com/CrawX/go-imap-bridge/domain"
)

type state int

const (
	stateOpen = state(iota)
	stateResolved
	stateFailed
)

// Session is the completion barrier of one batch fetch. It resolves exactly
// once: either when every started message has been accounted for and the
// stream has ended, or when the stream fails. Which of the two finish
// conditions happens last is not known in advance.
type Session struct {
	mu sync.Mutex

	expected    int
	received    int
	streamEnded bool
	records     map[uint32]*domain.MessageRecord

	state state
	err   error
	done  chan struct{}
}

func NewSession() *Session {
	return &Session{
		records: map[uint32]*domain.MessageRecord{},
		done:    make(chan struct{}),
	}
}

// MessageStarted registers a message whose body is about to be parsed.
func (s *Session) MessageStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return
	}
	s.expected++
}

// MessageFinished accounts for a parsed message. A nil record marks a
// message that failed to parse; it still counts towards the barrier.
func (s *Session) MessageFinished(seqNum uint32, record *domain.MessageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return
	}

	if record != nil {
		s.records[seqNum] = record
	}
	s.received++
	s.maybeResolve()
}

// StreamEnded marks that the server will not announce further messages.
func (s *Session) StreamEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen || s.streamEnded {
		return
	}
	s.streamEnded = true
	s.maybeResolve()
}

// Fail resolves the session with err, discarding collected records.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		return
	}
	s.state = stateFailed
	s.err = err
	s.records = nil
	close(s.done)
}

// maybeResolve must be called with mu held.
func (s *Session) maybeResolve() {
	if s.streamEnded && s.received == s.expected {
		s.state = stateResolved
		close(s.done)
	}
}

// Done is closed once the session has resolved or failed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session resolves and returns the collected records
// ordered by sequence number.
func (s *Session) Wait() ([]*domain.MessageRecord, error) {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateFailed {
		return nil, s.err
	}

	seqNums := make([]uint32, 0, len(s.records))
	for seq := range s.records {
		seqNums = append(seqNums, seq)
	}
	sort.Slice(seqNums, func(i, j int) bool { return seqNums[i] < seqNums[j] })

	records := make([]*domain.MessageRecord, 0, len(seqNums))
	for _, seq := range seqNums {
		records = append(records, s.records[seq])
	}
	return records, nil
}

// Counts returns expected and received message counts and whether the
// stream has ended.
func (s *Session) Counts() (int, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expected, s.received, s.streamEnded
}
