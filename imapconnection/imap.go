// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/CrawX/go-imap-bridge/config"
	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/log"

	"github.com/emersion/go-imap"
	compress "github.com/emersion/go-imap-compress"
	move "github.com/emersion/go-imap-move"
	uidplus "github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

// ImapConnection is a logged in IMAP session. It is used by a single
// operation and must be closed afterwards.
type ImapConnection struct {
	connection  imapClient
	uidplus     *uidplus.Client
	mailDeleter deleter
	mailMover   mover

	selectedMailbox string

	closeOnce sync.Once
	closeErr  error

	l *logrus.Logger
}

var _ domain.ImapConnector = (*ImapConnection)(nil)

func dial(cfg config.Imap) (*client.Client, error) {
	if cfg.UseTLS() {
		return client.DialTLS(cfg.Address(), &tls.Config{ServerName: cfg.Host})
	}

	c, err := client.Dial(cfg.Address())
	if err != nil {
		return nil, err
	}

	startTLS, err := c.SupportStartTLS()
	if err != nil {
		c.Logout()
		return nil, fmt.Errorf("could not check for STARTTLS support: %w", err)
	}
	if startTLS {
		if err := c.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
			c.Logout()
			return nil, fmt.Errorf("could not upgrade to TLS: %w", err)
		}
	}

	return c, nil
}

// NewImapConnection dials and logs in. Every failure is reported as a
// connection error.
func NewImapConnection(cfg config.Imap) (*ImapConnection, error) {
	const op = "connect"

	imapClient, err := dial(cfg)
	if err != nil {
		return nil, domain.ConnectionError(op, fmt.Errorf("could not dial to imap: %w", err))
	}

	err = imapClient.Login(cfg.User, cfg.Password)
	if err != nil {
		imapClient.Logout()
		return nil, domain.ConnectionError(op, fmt.Errorf("could not login to imap: %w", err))
	}

	conn := &ImapConnection{
		connection: imapClient,
		l:          log.Logger(log.LOG_IMAP),
	}
	baseLogger := conn.l.WithFields(logrus.Fields{"server": cfg.Address()})
	baseLogger.Debug("Logged in to server")

	if cfg.Compress {
		compressClient := compress.NewClient(imapClient)
		supported, err := compressClient.SupportCompress(compress.Deflate)
		if err == nil && supported {
			err = compressClient.Compress(compress.Deflate)
		}
		if err != nil {
			baseLogger.WithError(err).Warn("Could not enable COMPRESS, continuing uncompressed")
		} else if supported {
			baseLogger.Debug("COMPRESS=DEFLATE enabled")
		}
	}

	uidPlusClient := uidplus.NewClient(imapClient)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		conn.Close()
		return nil, domain.ConnectionError(op, fmt.Errorf("could not check for UIDPLUS support: %w", err))
	}

	moveClient := move.NewClient(imapClient)
	moveSupported, err := moveClient.SupportMove()
	if err != nil {
		conn.Close()
		return nil, domain.ConnectionError(op, fmt.Errorf("could not check for MOVE support: %w", err))
	}

	conn.configure(uidPlusClient, uidPlusSupported, moveClient, moveSupported)

	return conn, nil
}

func (ic *ImapConnection) configure(uidPlusClient *uidplus.Client, uidPlusSupported bool, moveClient moveClient, moveSupported bool) {
	if uidPlusSupported {
		ic.l.Debug("UIDPLUS supported on server, using UID delete")
		ic.uidplus = uidPlusClient
		ic.mailDeleter = &uidPlusDeleter{imapConn: ic}
	} else {
		ic.l.Info("UIDPLUS not supported on server, falling back to flag&expunge")
		ic.mailDeleter = &compatibilityDeleter{imapConn: ic}
	}

	if moveSupported {
		ic.mailMover = &extensionMover{client: moveClient}
	} else {
		ic.mailMover = &copyDeleteMover{conn: ic}
	}
	ic.l.WithField("method", ic.mailMover.method()).Debug("Selected move method")
}

func uidSet(uids []uint32) *imap.SeqSet {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	return seqset
}

func (ic *ImapConnection) Select(mailbox string, readOnly bool) (*imap.MailboxStatus, error) {
	status, err := ic.connection.Select(mailbox, readOnly)
	if err != nil {
		return nil, domain.MailboxError("select", fmt.Errorf("could not select mailbox %q: %w", mailbox, err))
	}

	ic.selectedMailbox = mailbox
	ic.l.WithFields(logrus.Fields{
		"mailbox":  mailbox,
		"messages": status.Messages,
		"readOnly": readOnly,
	}).Debug("Selected mailbox")
	return status, nil
}

func (ic *ImapConnection) Search(criteria *imap.SearchCriteria) ([]uint32, error) {
	uids, err := ic.connection.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search mailbox %q: %w", ic.selectedMailbox, err)
	}

	return uids, nil
}

func (ic *ImapConnection) FetchStream(uids []uint32, items []imap.FetchItem, ch chan *imap.Message) error {
	return ic.connection.UidFetch(uidSet(uids), items, ch)
}

func (ic *ImapConnection) Store(uids []uint32, op imap.FlagsOp, flags []string) error {
	values := make([]interface{}, 0, len(flags))
	for _, f := range flags {
		values = append(values, f)
	}

	err := ic.connection.UidStore(uidSet(uids), imap.FormatFlagsOp(op, true), values, nil)
	if err != nil {
		return fmt.Errorf("could not store flags: %w", err)
	}

	return nil
}

func (ic *ImapConnection) UidCopy(seqset *imap.SeqSet, dest string) error {
	return ic.connection.UidCopy(seqset, dest)
}

func (ic *ImapConnection) Copy(uids []uint32, mailbox string) error {
	if err := ic.UidCopy(uidSet(uids), mailbox); err != nil {
		return fmt.Errorf("could not copy to %q: %w", mailbox, err)
	}

	return nil
}

func (ic *ImapConnection) Move(uids []uint32, mailbox string) error {
	return ic.mailMover.move(uids, mailbox)
}

func (ic *ImapConnection) Append(mailbox string, flags []string, body []byte) error {
	err := ic.connection.Append(mailbox, flags, time.Now(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not append to %q: %w", mailbox, err)
	}

	return nil
}

func (ic *ImapConnection) List() ([]*imap.MailboxInfo, error) {
	out := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)
	go func() {
		done <- ic.connection.List("", "*", out)
	}()

	mailboxes := []*imap.MailboxInfo{}
	for m := range out {
		mailboxes = append(mailboxes, m)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("could not list mailboxes: %w", err)
	}

	return mailboxes, nil
}

func (ic *ImapConnection) Create(mailbox string) error {
	if err := ic.connection.Create(mailbox); err != nil {
		return fmt.Errorf("could not create %q: %w", mailbox, err)
	}

	return nil
}

func (ic *ImapConnection) Delete(mailbox string) error {
	if err := ic.connection.Delete(mailbox); err != nil {
		return fmt.Errorf("could not delete %q: %w", mailbox, err)
	}

	return nil
}

// Close logs out. Further calls return the first result.
func (ic *ImapConnection) Close() error {
	ic.closeOnce.Do(func() {
		ic.closeErr = ic.connection.Logout()
		if ic.closeErr != nil {
			ic.l.WithError(ic.closeErr).Debug("Logout failed")
		}
	})

	return ic.closeErr
}

func (ic *ImapConnection) delete(uids []uint32) error {
	return ic.mailDeleter.delete(uids)
}

func (ic *ImapConnection) deleteReady() (error, error) {
	return ic.mailDeleter.deleteReady()
}

func (ic *ImapConnection) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	seqset := uidSet(uids)
	err := ic.connection.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not set delete flag: %w", err)
	}

	return seqset, nil
}

func (ic *ImapConnection) Expunge(ch chan uint32) error {
	return ic.connection.Expunge(ch)
}

func (ic *ImapConnection) UidExpunge(seqset *imap.SeqSet, ch chan uint32) error {
	if ic.uidplus == nil {
		close(ch)
		return fmt.Errorf("UIDPLUS not supported")
	}
	return ic.uidplus.UidExpunge(seqset, ch)
}
