// SPDX-License-Identifier: GPL-3.0-or-later
package mailbox

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/domain/mocks"
	"github.com/CrawX/go-imap-bridge/log"

	"github.com/emersion/go-imap"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)

func testClock() time.Time {
	return testNow
}

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

type header struct {
	messageId  string
	inReplyTo  string
	references []string
}

func rawMail(h header, date time.Time, subject string) string {
	var b strings.Builder
	b.WriteString("From: Alice <alice@example.org>\r\n")
	b.WriteString("To: bob@example.org\r\n")
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	if len(h.messageId) > 0 {
		fmt.Fprintf(&b, "Message-ID: <%s>\r\n", h.messageId)
	}
	if len(h.inReplyTo) > 0 {
		fmt.Fprintf(&b, "In-Reply-To: <%s>\r\n", h.inReplyTo)
	}
	if len(h.references) > 0 {
		refs := []string{}
		for _, r := range h.references {
			refs = append(refs, "<"+r+">")
		}
		fmt.Fprintf(&b, "References: %s\r\n", strings.Join(refs, " "))
	}
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString("Hello " + subject + "\r\n")
	return b.String()
}

const attachmentMail = "From: alice@example.org\r\n" +
	"To: bob@example.org\r\n" +
	"Subject: numbers\r\n" +
	"Date: Mon, 14 Oct 2024 09:00:00 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=\"outer\"\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"see attached\r\n" +
	"--outer\r\n" +
	"Content-Type: application/octet-stream\r\n" +
	"Content-Disposition: attachment; filename=\"blob.bin\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"AAECAw==\r\n" +
	"--outer--\r\n"

func message(seq, uid uint32, raw string) *imap.Message {
	return &imap.Message{
		SeqNum: seq,
		Uid:    uid,
		Size:   uint32(len(raw)),
		Body: map[*imap.BodySectionName]imap.Literal{
			{}: bytes.NewBufferString(raw),
		},
	}
}

// streams makes FetchStream emit messages and close the channel like the
// imap client does.
func streams(messages ...*imap.Message) func(uids []uint32, items []imap.FetchItem, ch chan *imap.Message) error {
	return func(uids []uint32, items []imap.FetchItem, ch chan *imap.Message) error {
		for _, m := range messages {
			ch <- m
		}
		close(ch)
		return nil
	}
}

func newTestService(t *testing.T, conn *mocks.MockImapConnector, cfgs ...ConfigFunc) *Service {
	log.InitLogging("error")

	connect := func() (domain.ImapConnector, error) {
		if conn == nil {
			t.Fatal("unexpected connection")
		}
		return conn, nil
	}

	service, err := NewService(connect, append([]ConfigFunc{Clock(testClock)}, cfgs...)...)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	return service
}

// expectSession expects the connection to be opened on mailbox and closed
// exactly once.
func expectSession(conn *mocks.MockImapConnector, mailbox string) {
	if len(mailbox) > 0 {
		conn.EXPECT().
			Select(mailbox, false).
			Return(&imap.MailboxStatus{Name: mailbox}, nil)
	}
	conn.EXPECT().
		Close().
		Return(nil).
		Times(1)
}

func subjects(records []*domain.MessageRecord) []string {
	s := []string{}
	for _, r := range records {
		s = append(s, r.Subject)
	}
	return s
}

func newController(t *testing.T) (*gomock.Controller, *mocks.MockImapConnector) {
	ctrl := gomock.NewController(t)
	return ctrl, mocks.NewMockImapConnector(ctrl)
}
