// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"encoding/base64"
	"fmt"

	"github.com/CrawX/go-imap-bridge/domain"
)

const opAttachment = "getAttachment"

// ExtractAttachment returns attachment index of raw, base64 encoded
// regardless of the transfer encoding it was sent with. A message that
// cannot be parsed yields a ParseError.
func ExtractAttachment(raw []byte, index int) (*domain.AttachmentPayload, error) {
	parsed, err := ParseMessage(raw)
	if err != nil {
		return nil, domain.ParseError(opAttachment, err)
	}

	return SelectAttachment(parsed, index)
}

func SelectAttachment(parsed *Parsed, index int) (*domain.AttachmentPayload, error) {
	if len(parsed.Attachments) == 0 {
		return nil, domain.NotFoundError(opAttachment, fmt.Errorf("message has no attachments"))
	}

	if index < 0 || index >= len(parsed.Attachments) {
		return nil, domain.IndexOutOfRangeError(opAttachment, fmt.Errorf("attachment index %d out of range, message has %d attachments", index, len(parsed.Attachments)))
	}

	a := parsed.Attachments[index]
	return &domain.AttachmentPayload{
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        len(a.Content),
		Content:     base64.StdEncoding.EncodeToString(a.Content),
	}, nil
}
