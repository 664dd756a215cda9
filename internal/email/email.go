// Package email formats and sends the order receipt through a transactional
// email provider. Sending is best-effort: the fulfillment pipeline never
// waits on it and failures only surface in logs and metrics.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/resend/resend-go/v2"
)

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers one message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendSender sends through the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", err
	}
	if sent == nil || sent.Id == "" {
		return "", fmt.Errorf("resend returned no message id")
	}
	return sent.Id, nil
}

// Dispatcher renders receipts and hands them to the Sender. A nil Dispatcher
// (email not configured) is valid and drops everything.
type Dispatcher struct {
	Sender Sender
	From   string

	wg sync.WaitGroup
}

func NewDispatcher(sender Sender, from string) *Dispatcher {
	return &Dispatcher{Sender: sender, From: from}
}

// Configured reports whether a sender is wired.
func (d *Dispatcher) Configured() bool {
	return d != nil && d.Sender != nil
}

// Dispatch renders and sends a receipt, returning the provider message id.
func (d *Dispatcher) Dispatch(ctx context.Context, to string, r Receipt) (string, error) {
	if !d.Configured() {
		return "", fmt.Errorf("email not configured")
	}
	html, err := r.RenderHTML()
	if err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return d.Sender.Send(ctx, Message{
		From:    d.From,
		To:      to,
		Subject: r.Subject(),
		HTML:    html,
	})
}

// DispatchAsync sends in the background, detached from the caller's request
// lifecycle: no cancellation, no timeout, no retry, at most one attempt.
// onDone (optional) receives the outcome for logging/metrics.
func (d *Dispatcher) DispatchAsync(to string, r Receipt, onDone func(id string, err error)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		id, err := d.Dispatch(context.Background(), to, r)
		if err != nil {
			slog.Error("Receipt email failed", "order_id", r.OrderID, "to", to, "error", err)
		} else {
			slog.Info("Receipt email sent", "order_id", r.OrderID, "to", to, "message_id", id)
		}
		if onDone != nil {
			onDone(id, err)
		}
	}()
}

// Wait blocks until in-flight sends finish. Used during shutdown and tests.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}
