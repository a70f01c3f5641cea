// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultImapPort = 993
	DefaultSmtpPort = 587
	SmtpsPort       = 465
)

type Smtp struct {
	Host     string
	Port     int
	Secure   *bool
	User     string
	Password string
	From     string
}

// Address returns host:port of the submission server.
func (s Smtp) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ImplicitTLS reports whether the connection is TLS from the first byte
// rather than upgraded via STARTTLS.
func (s Smtp) ImplicitTLS() bool {
	if s.Secure != nil {
		return *s.Secure
	}
	return s.Port == SmtpsPort
}

type Imap struct {
	Host     string
	Port     int
	TLS      *bool
	User     string
	Password string
	Compress bool
}

// Address returns host:port of the imap server.
func (i Imap) Address() string {
	return net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
}

func (i Imap) UseTLS() bool {
	return i.TLS == nil || *i.TLS
}

type Config struct {
	// Database is the sqlite file of the operation journal, journaling is
	// disabled when empty.
	Database string
	// JournalRetentionDays prunes journal entries older than this many days
	// on startup, 0 keeps them forever.
	JournalRetentionDays int
	// ExpandThreads makes thread lookups follow related identifiers with a
	// second search.
	ExpandThreads bool

	Smtp Smtp
	Imap Imap

	Loglevel *string
}

func ReadConfig(filename string) (*Config, error) {
	config := &Config{}

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	config.applyDefaults()

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults fills ports and lets the retrieval side inherit the
// credentials of the sending side.
func (c *Config) applyDefaults() {
	if c.Smtp.Port == 0 {
		c.Smtp.Port = DefaultSmtpPort
	}
	if len(strings.TrimSpace(c.Smtp.From)) == 0 {
		c.Smtp.From = c.Smtp.User
	}

	if c.Imap.Port == 0 {
		c.Imap.Port = DefaultImapPort
	}
	if len(strings.TrimSpace(c.Imap.Host)) == 0 {
		c.Imap.Host = c.Smtp.Host
	}
	if len(strings.TrimSpace(c.Imap.User)) == 0 {
		c.Imap.User = c.Smtp.User
	}
	if len(strings.TrimSpace(c.Imap.Password)) == 0 {
		c.Imap.Password = c.Smtp.Password
	}
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Imap.Host, "Imap.Host must not be empty, set Imap.Host or Smtp.Host"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.User, "Imap.User must not be empty, set Imap.User or Smtp.User"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Imap.Password, "Imap.Password must not be empty, set Imap.Password or Smtp.Password"); err != nil {
		return err
	}

	if err := validatePort(c.Imap.Port, "Imap.Port"); err != nil {
		return err
	}

	if err := validatePort(c.Smtp.Port, "Smtp.Port"); err != nil {
		return err
	}

	if c.JournalRetentionDays < 0 {
		return fmt.Errorf("JournalRetentionDays must not be negative, got %d", c.JournalRetentionDays)
	}

	return nil
}

// JournalCutoff is the instant before which journal entries are pruned,
// zero when entries are kept forever.
func (c *Config) JournalCutoff(now time.Time) time.Time {
	if c.JournalRetentionDays == 0 {
		return time.Time{}
	}
	return now.AddDate(0, 0, -c.JournalRetentionDays)
}

// SmtpReady reports whether enough is configured to send mail.
func (c *Config) SmtpReady() error {
	if err := validateNonEmptyStringField(c.Smtp.Host, "Smtp.Host must be set to send mail"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Smtp.From, "Smtp.From or Smtp.User must be set to send mail"); err != nil {
		return err
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}

func validatePort(port int, name string) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}

	return nil
}
