// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import "github.com/emersion/go-imap"

//go:generate mockgen -destination=delete_move_mocks_test.go -package=imapconnection -source delete_move.go

// mockgen source mode cannot resolve embedded interfaces across files, so
// every interface that embeds deleter lives here.

// deleter removes messages from the selected mailbox. deleteReady returns a
// non-nil reason when deleting would touch other messages, and an error when
// that could not be determined.
type deleter interface {
	delete(uids []uint32) error
	deleteReady() (error, error)
}

type mover interface {
	move(uids []uint32, destination string) error
	method() moveMethod
}

type copyAndDeleteMoveClient interface {
	deleter
	UidCopy(seqset *imap.SeqSet, dest string) error
}
