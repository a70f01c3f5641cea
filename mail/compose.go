// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"

	gomail "github.com/emersion/go-message/mail"
)

const opCompose = "compose"

// ComposeOptions controls headers that differ between a stored draft and a
// message handed to the transfer agent.
type ComposeOptions struct {
	Date       time.Time
	MessageId  string
	IncludeBcc bool
}

// Compose renders d as an RFC 5322 message with From, To, Cc, optionally
// Bcc, Subject, MIME-Version and Content-Type headers. A message with an
// html body becomes multipart/alternative.
func Compose(d *domain.Draft, opts ComposeOptions) ([]byte, error) {
	h, err := composeHeader(d, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if len(d.Html) == 0 {
		h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
		w, err := gomail.CreateSingleInlineWriter(&buf, *h)
		if err != nil {
			return nil, fmt.Errorf("could not create message writer: %w", err)
		}
		if err := writeAndClose(w, d.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	mw, err := gomail.CreateWriter(&buf, *h)
	if err != nil {
		return nil, fmt.Errorf("could not create message writer: %w", err)
	}
	iw, err := mw.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("could not create alternative part: %w", err)
	}

	for _, part := range []struct {
		contentType string
		body        string
	}{
		{"text/plain", d.Body},
		{"text/html", d.Html},
	} {
		var ph gomail.InlineHeader
		ph.SetContentType(part.contentType, map[string]string{"charset": "utf-8"})
		w, err := iw.CreatePart(ph)
		if err != nil {
			return nil, fmt.Errorf("could not create %s part: %w", part.contentType, err)
		}
		if err := writeAndClose(w, part.body); err != nil {
			return nil, err
		}
	}

	if err := iw.Close(); err != nil {
		return nil, fmt.Errorf("could not close alternative part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("could not close message: %w", err)
	}

	return buf.Bytes(), nil
}

func composeHeader(d *domain.Draft, opts ComposeOptions) (*gomail.Header, error) {
	violations := []domain.FieldViolation{}
	parse := func(field string, values []string) []*gomail.Address {
		addrs := []*gomail.Address{}
		for _, v := range values {
			a, err := gomail.ParseAddress(v)
			if err != nil {
				violations = append(violations, domain.FieldViolation{Field: field, Message: fmt.Sprintf("invalid address %q", v)})
				continue
			}
			addrs = append(addrs, a)
		}
		return addrs
	}

	from := parse("from", []string{d.From})
	to := parse("to", d.To)
	cc := parse("cc", d.Cc)
	bcc := parse("bcc", d.Bcc)
	if len(violations) > 0 {
		return nil, domain.ValidationError(opCompose, violations...)
	}

	h := &gomail.Header{}
	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	h.SetDate(date)
	h.SetAddressList("From", from)
	if len(to) > 0 {
		h.SetAddressList("To", to)
	}
	if len(cc) > 0 {
		h.SetAddressList("Cc", cc)
	}
	if opts.IncludeBcc && len(bcc) > 0 {
		h.SetAddressList("Bcc", bcc)
	}
	h.SetSubject(d.Subject)
	if len(opts.MessageId) > 0 {
		h.SetMessageID(opts.MessageId)
	}
	if len(d.InReplyTo) > 0 {
		h.SetMsgIDList("In-Reply-To", []string{trimId(d.InReplyTo)})
	}
	if len(d.References) > 0 {
		refs := make([]string, 0, len(d.References))
		for _, r := range d.References {
			refs = append(refs, trimId(r))
		}
		h.SetMsgIDList("References", refs)
	}
	h.Set("MIME-Version", "1.0")

	return h, nil
}

func writeAndClose(w io.WriteCloser, body string) error {
	if _, err := io.WriteString(w, body); err != nil {
		w.Close()
		return fmt.Errorf("could not write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("could not close body: %w", err)
	}
	return nil
}

// GenerateMessageId returns a random Message-ID in the domain of from.
func GenerateMessageId(from string) string {
	host := "localhost"
	if a, err := gomail.ParseAddress(from); err == nil {
		if at := strings.LastIndex(a.Address, "@"); at >= 0 && at < len(a.Address)-1 {
			host = a.Address[at+1:]
		}
	}

	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d@%s", time.Now().UnixNano(), host)
	}
	return fmt.Sprintf("%d.%s@%s", time.Now().Unix(), hex.EncodeToString(b), host)
}
