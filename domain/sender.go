// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/sender.go -package=mocks . Sender

type SendResult struct {
	MessageId string `json:"messageId"`
	Response  string `json:"response"`
}

// Sender hands one composed message to the mail transfer agent and blocks
// until it is accepted or rejected.
type Sender interface {
	Send(draft *Draft) (*SendResult, error)
}
