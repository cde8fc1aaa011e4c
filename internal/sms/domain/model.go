// Package domain contains the SMS relay contracts. The relay forwards
// notification messages to an upstream gateway on behalf of callers that
// cannot hold gateway credentials themselves.
package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrInvalidBody      = errors.New("invalid message body")
	ErrUnknownProvider  = errors.New("unknown sms provider")
)

// Message is a single outbound SMS.
type Message struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// ProviderError carries the upstream gateway's failure so the transport
// layer can surface it as a bad-gateway response instead of an internal one.
type ProviderError struct {
	Provider   string
	StatusCode int
	Payload    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s gateway error: status %d: %s", e.Provider, e.StatusCode, e.Payload)
}

// Provider is an upstream SMS gateway adapter.
type Provider interface {
	Name() string
	Send(ctx context.Context, message Message) error
}

type Service interface {
	Send(ctx context.Context, message Message) error
}
