// SPDX-License-Identifier: GPL-3.0-or-later
package smtpsender

import (
	"errors"
	"net"
	"net/smtp"

	"github.com/emersion/go-sasl"
)

// saslAuth drives a SASL client through net/smtp's AUTH exchange.
type saslAuth struct {
	client sasl.Client
	host   string
}

func (a *saslAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	// Credentials only go over TLS, unless the server is local.
	if !server.TLS && !isLocalhost(server.Name) {
		return "", nil, errors.New("refusing to authenticate over an unencrypted connection")
	}
	if server.Name != a.host {
		return "", nil, errors.New("wrong host name")
	}

	return a.client.Start()
}

func (a *saslAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	return a.client.Next(fromServer)
}

func isLocalhost(name string) bool {
	if name == "localhost" {
		return true
	}
	ip := net.ParseIP(name)
	return ip != nil && ip.IsLoopback()
}
