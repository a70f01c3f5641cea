// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

//go:generate mockgen -destination=deleter_mocks_test.go -package=imapconnection -source deleter.go
import (
	"errors"
	"fmt"

	"github.com/emersion/go-imap"
)

var ErrDeletedFlagPresent = errors.New("mailbox has previous items with delete flag set")

type deletedFlagger interface {
	flagDeleted(uids []uint32) (*imap.SeqSet, error)
}

type deletedFlaggerAndUidExpunger interface {
	deletedFlagger
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

type deleteFlaggerAndExpunger interface {
	deletedFlagger
	Expunge(ch chan uint32) error
	Search(criteria *imap.SearchCriteria) (uids []uint32, err error)
}

// expungeAll runs an expunge command and checks that exactly want
// messages went away.
func expungeAll(want int, expunge func(ch chan uint32) error) error {
	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- expunge(out)
	}()

	count := 0
	for range out {
		count++
	}

	if err := <-done; err != nil {
		return fmt.Errorf("could not expunge messages: %w", err)
	}
	if count != want {
		return fmt.Errorf("unexpected number of expunges, expected %d got %d", want, count)
	}

	return nil
}

type uidPlusDeleter struct {
	imapConn deletedFlaggerAndUidExpunger
}

func (u *uidPlusDeleter) delete(uids []uint32) error {
	seqset, err := u.imapConn.flagDeleted(uids)
	if err != nil {
		return fmt.Errorf("could not flag items as deleted: %w", err)
	}

	return expungeAll(len(uids), func(ch chan uint32) error {
		return u.imapConn.UidExpunge(seqset, ch)
	})
}

func (u *uidPlusDeleter) deleteReady() (error, error) {
	// UID EXPUNGE only touches the given uids
	return nil, nil
}

type compatibilityDeleter struct {
	imapConn deleteFlaggerAndExpunger
}

func (c *compatibilityDeleter) delete(uids []uint32) error {
	notReady, err := c.deleteReady()
	if err != nil {
		return fmt.Errorf("could not check for delete readiness: %w", err)
	}
	if notReady != nil {
		return fmt.Errorf("mailbox is not ready for delete: %w", notReady)
	}

	if _, err = c.imapConn.flagDeleted(uids); err != nil {
		return fmt.Errorf("could not set deleted flag: %w", err)
	}

	return expungeAll(len(uids), c.imapConn.Expunge)
}

// deleteReady reports ErrDeletedFlagPresent when a plain EXPUNGE would
// remove messages other than the ones being deleted.
func (c *compatibilityDeleter) deleteReady() (error, error) {
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	uids, err := c.imapConn.Search(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search for deleted in mailbox: %w", err)
	}

	if len(uids) > 0 {
		return ErrDeletedFlagPresent, nil
	}
	return nil, nil
}
