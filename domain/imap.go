// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import (
	"github.com/emersion/go-imap"
)

//go:generate mockgen -destination=mocks/imap.go -package=mocks . ImapConnector

// ImapConnector is one authenticated connection owned by a single operation.
// FetchStream closes ch before returning, like the underlying UID FETCH.
type ImapConnector interface {
	Select(mailbox string, readOnly bool) (*imap.MailboxStatus, error)
	Search(criteria *imap.SearchCriteria) ([]uint32, error)
	FetchStream(uids []uint32, items []imap.FetchItem, ch chan *imap.Message) error
	Store(uids []uint32, op imap.FlagsOp, flags []string) error
	Copy(uids []uint32, mailbox string) error
	Move(uids []uint32, mailbox string) error
	Append(mailbox string, flags []string, body []byte) error
	List() ([]*imap.MailboxInfo, error)
	Create(mailbox string) error
	Delete(mailbox string) error

	Close() error
}
