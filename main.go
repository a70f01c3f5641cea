// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/CrawX/go-imap-bridge/config"
	"github.com/CrawX/go-imap-bridge/domain"
	"github.com/CrawX/go-imap-bridge/imapconnection"
	"github.com/CrawX/go-imap-bridge/log"
	"github.com/CrawX/go-imap-bridge/mailbox"
	"github.com/CrawX/go-imap-bridge/persistence"
	"github.com/CrawX/go-imap-bridge/smtpsender"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(start())
}

// start runs one operation and returns the exit code, so deferred closes
// run before exiting.
func start() int {
	log.InitLogging("info")
	logger := log.Logger(log.LOG_MAIN)

	args := &arguments{}
	fs := args.flagSet(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		return 2
	}

	conf, err := config.ReadConfig(args.config)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	configs := []mailbox.ConfigFunc{}
	if conf.ExpandThreads {
		configs = append(configs, mailbox.ExpandThreads())
	}

	if len(conf.Database) > 0 {
		p, err := persistence.NewPersistence(conf.Database)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not connect to database")
		}
		defer p.Close()

		if cutoff := conf.JournalCutoff(time.Now()); !cutoff.IsZero() {
			removed, err := p.Prune(cutoff)
			if err != nil {
				logger.WithField("error", err).Warn("Could not prune journal")
			} else {
				logger.WithFields(logrus.Fields{"removed": removed, "before": cutoff}).Debug("Pruned journal")
			}
		}
		configs = append(configs, mailbox.WithJournal(p))
	}

	if err := conf.SmtpReady(); err == nil {
		configs = append(configs, mailbox.WithSender(smtpsender.NewSmtpSender(conf.Smtp)), mailbox.DefaultFrom(conf.Smtp.From))
	} else {
		logger.WithField("reason", err).Debug("Sending mail disabled")
	}

	connect := func() (domain.ImapConnector, error) {
		conn, err := imapconnection.NewImapConnection(conf.Imap)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}

	service, err := mailbox.NewService(connect, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not start mailbox service")
	}

	logger.WithFields(logrus.Fields{"operation": args.op, "mailbox": args.mailbox}).Debug("Running operation")
	response, failed := run(service, args)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		logger.WithField("error", err).Fatal("Could not write result")
	}

	if failed {
		return 1
	}
	return 0
}
