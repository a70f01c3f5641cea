// SPDX-License-Identifier: GPL-3.0-or-later
package smtpsender

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/CrawX/go-imap-bridge/config"
	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/log"
	"github.com/CrawX/go-imap-bridge/mail"

	"github.com/emersion/go-sasl"
	gomail "github.com/emersion/go-message/mail"
	"github.com/sirupsen/logrus"
)

const (
	opSend      = "sendMail"
	DialTimeout = 30 * time.Second
)

type SmtpSender struct {
	cfg config.Smtp
	now func() time.Time
	l   *logrus.Logger
}

var _ domain.Sender = (*SmtpSender)(nil)

func NewSmtpSender(cfg config.Smtp) *SmtpSender {
	return &SmtpSender{
		cfg: cfg,
		now: time.Now,
		l:   log.Logger(log.LOG_SMTP),
	}
}

// Send composes draft and submits it in one SMTP transaction. Bcc
// recipients get the message but do not appear in its header.
func (s *SmtpSender) Send(draft *domain.Draft) (*domain.SendResult, error) {
	d := *draft
	if len(strings.TrimSpace(d.From)) == 0 {
		d.From = s.cfg.From
	}

	violations := []domain.FieldViolation{}
	if len(strings.TrimSpace(d.From)) == 0 {
		violations = append(violations, domain.FieldViolation{Field: "from", Message: "must not be empty"})
	}
	if len(d.To)+len(d.Cc)+len(d.Bcc) == 0 {
		violations = append(violations, domain.FieldViolation{Field: "to", Message: "at least one recipient is required"})
	}
	if len(violations) > 0 {
		return nil, domain.ValidationError(opSend, violations...)
	}

	envelopeFrom, err := bareAddress(d.From)
	if err != nil {
		return nil, domain.ValidationError(opSend, domain.FieldViolation{Field: "from", Message: err.Error()})
	}

	recipients := []string{}
	for _, list := range [][]string{d.To, d.Cc, d.Bcc} {
		for _, r := range list {
			addr, err := bareAddress(r)
			if err != nil {
				return nil, domain.ValidationError(opSend, domain.FieldViolation{Field: "to", Message: err.Error()})
			}
			recipients = append(recipients, addr)
		}
	}

	messageId := mail.GenerateMessageId(d.From)
	body, err := mail.Compose(&d, mail.ComposeOptions{
		Date:      s.now(),
		MessageId: messageId,
	})
	if err != nil {
		return nil, err
	}

	response, err := s.submit(envelopeFrom, recipients, body)
	if err != nil {
		return nil, domain.SendError(opSend, err)
	}

	s.l.WithFields(logrus.Fields{
		"messageId":  messageId,
		"recipients": len(recipients),
		"subject":    mail.ShortSubject(d.Subject),
	}).Info("Sent mail")

	return &domain.SendResult{
		MessageId: "<" + messageId + ">",
		Response:  response,
	}, nil
}

func bareAddress(s string) (string, error) {
	a, err := gomail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", s, err)
	}
	return a.Address, nil
}

func (s *SmtpSender) dial() (*smtp.Client, error) {
	addr := s.cfg.Address()
	tlsConfig := &tls.Config{ServerName: s.cfg.Host}

	var conn net.Conn
	var err error
	if s.cfg.ImplicitTLS() {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: DialTimeout}, "tcp", addr, tlsConfig)
	} else {
		conn, err = net.DialTimeout("tcp", addr, DialTimeout)
	}
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not greet %s: %w", addr, err)
	}

	if !s.cfg.ImplicitTLS() {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				c.Close()
				return nil, fmt.Errorf("could not start TLS: %w", err)
			}
		}
	}

	return c, nil
}

// submit runs one mail transaction and returns the final server reply.
func (s *SmtpSender) submit(from string, recipients []string, body []byte) (string, error) {
	c, err := s.dial()
	if err != nil {
		return "", err
	}
	defer c.Close()

	if len(s.cfg.User) > 0 {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := &saslAuth{
				client: sasl.NewPlainClient("", s.cfg.User, s.cfg.Password),
				host:   s.cfg.Host,
			}
			if err := c.Auth(auth); err != nil {
				return "", fmt.Errorf("could not authenticate: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return "", fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, r := range recipients {
		if err := c.Rcpt(r); err != nil {
			return "", fmt.Errorf("RCPT TO %s rejected: %w", r, err)
		}
	}

	response, err := data(c, body)
	if err != nil {
		return "", err
	}

	if err := c.Quit(); err != nil {
		s.l.WithError(err).Debug("QUIT failed after accepted message")
	}

	return response, nil
}

// data is smtp.Client.Data, except the reply to the final dot is kept
// since it usually carries the queue id.
func data(c *smtp.Client, body []byte) (string, error) {
	id, err := c.Text.Cmd("DATA")
	if err != nil {
		return "", fmt.Errorf("could not send DATA: %w", err)
	}
	c.Text.StartResponse(id)
	_, _, err = c.Text.ReadResponse(354)
	c.Text.EndResponse(id)
	if err != nil {
		return "", fmt.Errorf("DATA rejected: %w", err)
	}

	w := c.Text.DotWriter()
	if _, err := w.Write(body); err != nil {
		w.Close()
		return "", fmt.Errorf("could not write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("could not finish message: %w", err)
	}

	code, msg, err := c.Text.ReadResponse(250)
	if err != nil {
		return "", fmt.Errorf("message rejected: %w", err)
	}

	return fmt.Sprintf("%d %s", code, msg), nil
}
