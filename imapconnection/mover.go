// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

//go:generate mockgen -destination=mover_mocks_test.go -package=imapconnection -source mover.go
import (
	"fmt"

	"github.com/emersion/go-imap"
)

// moveMethod names how messages leave the selected mailbox, for logs.
type moveMethod string

const (
	methodMove       moveMethod = "MOVE"
	methodCopyDelete moveMethod = "COPY+DELETE"
)

type moveClient interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

// extensionMover relies on the server side MOVE extension.
type extensionMover struct {
	client moveClient
}

func (m *extensionMover) move(uids []uint32, destination string) error {
	if err := m.client.UidMove(uidSet(uids), destination); err != nil {
		return fmt.Errorf("could not move to %q: %w", destination, err)
	}

	return nil
}

func (m *extensionMover) method() moveMethod {
	return methodMove
}

// copyDeleteMover emulates MOVE. The source is removed only once the copy
// succeeded, so a failure leaves a duplicate and never loses a message.
type copyDeleteMover struct {
	conn copyAndDeleteMoveClient
}

func (c *copyDeleteMover) move(uids []uint32, destination string) error {
	blocked, err := c.conn.deleteReady()
	if err != nil {
		return fmt.Errorf("could not check whether the source can be expunged: %w", err)
	}
	if blocked != nil {
		return fmt.Errorf("cannot move to %q without MOVE support: %w", destination, blocked)
	}

	if err := c.conn.UidCopy(uidSet(uids), destination); err != nil {
		return fmt.Errorf("could not copy to %q: %w", destination, err)
	}

	if err := c.conn.delete(uids); err != nil {
		return fmt.Errorf("copied to %q but could not remove the source: %w", destination, err)
	}

	return nil
}

func (c *copyDeleteMover) method() moveMethod {
	return methodCopyDelete
}
