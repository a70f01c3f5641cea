// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/domain"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	gomail "github.com/emersion/go-message/mail"
)

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Parsed is the decoded form of one raw RFC 5322 message.
type Parsed struct {
	From       []domain.Address
	To         []domain.Address
	Cc         []domain.Address
	Subject    string
	Date       time.Time
	MessageId  string
	InReplyTo  string
	References []string

	Text        string
	Html        string
	Attachments []*Attachment
}

// isRecoverable reports whether go-message handed back a usable entity
// together with err. That only holds for unknown charsets; an unknown
// transfer encoding leaves nothing to read.
func isRecoverable(err error) bool {
	return message.IsUnknownCharset(err)
}

// ParseMessage decodes headers, bodies and attachments. Transfer encodings
// and charsets are decoded, attachment content is kept as raw bytes.
// A part with an unknown transfer encoding fails the whole message so no
// attachment is dropped silently.
func ParseMessage(raw []byte) (*Parsed, error) {
	mr, err := gomail.CreateReader(bytes.NewReader(raw))
	if mr == nil || (err != nil && !isRecoverable(err)) {
		return nil, fmt.Errorf("could not parse mail: %w", err)
	}
	defer mr.Close()

	parsed := &Parsed{}
	parseHeader(&mr.Header, parsed)

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if p == nil || (err != nil && !isRecoverable(err)) {
			return nil, fmt.Errorf("could not read mail part: %w", err)
		}

		switch h := p.Header.(type) {
		case *gomail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, err := ioutil.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read inline part: %w", err)
			}

			switch {
			case contentType == "text/html":
				if len(parsed.Html) == 0 {
					parsed.Html = string(body)
				}
			case contentType == "text/plain" || len(contentType) == 0:
				if len(parsed.Text) == 0 {
					parsed.Text = string(body)
				}
			default:
				// Inline non-text parts such as embedded images are
				// attachments for the caller.
				parsed.Attachments = append(parsed.Attachments, &Attachment{
					Filename:    inlineFilename(h),
					ContentType: contentType,
					Content:     body,
				})
			}
		case *gomail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			body, err := ioutil.ReadAll(p.Body)
			if err != nil {
				return nil, fmt.Errorf("could not read attachment %q: %w", filename, err)
			}

			parsed.Attachments = append(parsed.Attachments, &Attachment{
				Filename:    filename,
				ContentType: contentType,
				Content:     body,
			})
		}
	}

	return parsed, nil
}

func parseHeader(h *gomail.Header, parsed *Parsed) {
	parsed.From = addressList(h, "From")
	parsed.To = addressList(h, "To")
	parsed.Cc = addressList(h, "Cc")

	subject, err := h.Subject()
	if err != nil {
		subject = h.Get("Subject")
	}
	parsed.Subject = subject

	date, err := h.Date()
	if err == nil {
		parsed.Date = date
	}

	messageId, err := h.MessageID()
	if err != nil || len(messageId) == 0 {
		messageId = trimId(h.Get("Message-Id"))
	}
	parsed.MessageId = messageId

	inReplyTo := msgIdList(h, "In-Reply-To")
	if len(inReplyTo) > 0 {
		parsed.InReplyTo = inReplyTo[0]
	}
	parsed.References = msgIdList(h, "References")
}

func addressList(h *gomail.Header, key string) []domain.Address {
	addrs, err := h.AddressList(key)
	if err != nil {
		raw := strings.TrimSpace(h.Get(key))
		if len(raw) == 0 {
			return nil
		}
		return []domain.Address{{Address: raw}}
	}

	result := make([]domain.Address, 0, len(addrs))
	for _, a := range addrs {
		result = append(result, domain.Address{Name: a.Name, Address: a.Address})
	}
	return result
}

// msgIdList falls back to whitespace tokens when the header is not a valid
// msg-id list, which is common for References written by old clients.
func msgIdList(h *gomail.Header, key string) []string {
	ids, err := h.MsgIDList(key)
	if err == nil {
		return ids
	}

	ids = nil
	for _, token := range strings.Fields(h.Get(key)) {
		if id := trimId(token); len(id) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func inlineFilename(h *gomail.InlineHeader) string {
	_, params, err := h.ContentDisposition()
	if err == nil && len(params["filename"]) > 0 {
		return params["filename"]
	}
	_, params, err = h.ContentType()
	if err == nil {
		return params["name"]
	}
	return ""
}

func trimId(id string) string {
	return strings.Trim(strings.TrimSpace(id), "<>")
}

const shortSubjectRunes = 30

// ShortSubject truncates subject to shortSubjectRunes characters for log lines.
func ShortSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) > shortSubjectRunes {
		return string(runes[:shortSubjectRunes]) + "..."
	}
	return subject
}
