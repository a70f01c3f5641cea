// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"time"

	"github.com/emersion/go-imap"
)

//go:generate mockgen -destination=client_mocks_test.go -package=imapconnection -source client.go

// imapClient is the subset of *client.Client the connection uses.
type imapClient interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
	UidCopy(seqset *imap.SeqSet, dest string) error
	Append(mbox string, flags []string, date time.Time, msg imap.Literal) error
	List(ref, name string, ch chan *imap.MailboxInfo) error
	Create(name string) error
	Delete(name string) error
	Expunge(ch chan uint32) error
	Logout() error
}
