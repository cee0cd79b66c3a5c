package channel

import (
	"context"
	"errors"
	"testing"

	"placemsg/internal/message"
	"placemsg/internal/transport"
	"placemsg/pkg/logx"
)

func testPayload() message.EmailPayload {
	return message.EmailPayload{Subject: "s", HTMLBody: "<p>b</p>"}
}

type fakeTransport struct {
	sent []string
	err  error
	last transport.ChatTarget
}

func (f *fakeTransport) SendText(ctx context.Context, to transport.ChatTarget, text string, opt *transport.SendOptions) (transport.MessageRef, error) {
	if f.err != nil {
		return transport.MessageRef{}, f.err
	}
	f.sent = append(f.sent, text)
	f.last = to
	return transport.MessageRef{ChatID: to.ChatID, MessageID: len(f.sent)}, nil
}

func TestChatSend(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{}
	c := NewChat(ft, -100123, logx.Nop())

	if !c.Configured() {
		t.Fatal("chat with sender and group id should be configured")
	}
	if !c.Send(context.Background(), "hello group") {
		t.Fatal("send should succeed")
	}
	if len(ft.sent) != 1 || ft.sent[0] != "hello group" {
		t.Fatalf("sent = %v", ft.sent)
	}
	if ft.last.ChatID != -100123 {
		t.Fatalf("target chat id = %d", ft.last.ChatID)
	}
}

func TestChatSendFailureDoesNotPropagate(t *testing.T) {
	t.Parallel()
	ft := &fakeTransport{err: errors.New("telegram down")}
	c := NewChat(ft, -100123, logx.Nop())
	if c.Send(context.Background(), "hello") {
		t.Fatal("send should report failure")
	}
}

func TestChatUnconfigured(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		chat *Chat
	}{
		{name: "nil sender", chat: NewChat(nil, -100123, logx.Nop())},
		{name: "zero group id", chat: NewChat(&fakeTransport{}, 0, logx.Nop())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.chat.Configured() {
				t.Fatal("should be unconfigured")
			}
			if tt.chat.Send(context.Background(), "x") {
				t.Fatal("unconfigured send must fail")
			}
		})
	}
}

func TestEmailConfigured(t *testing.T) {
	t.Parallel()
	full := EmailConfig{Host: "smtp.gmail.com", Username: "cell@example.com", Password: "pw"}
	if !NewEmail(full, logx.Nop()).Configured() {
		t.Fatal("full config should be configured")
	}

	for _, tt := range []struct {
		name string
		cfg  EmailConfig
	}{
		{name: "no host", cfg: EmailConfig{Username: "u", Password: "p"}},
		{name: "no username", cfg: EmailConfig{Host: "h", Password: "p"}},
		{name: "no password", cfg: EmailConfig{Host: "h", Username: "u"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if NewEmail(tt.cfg, logx.Nop()).Configured() {
				t.Fatal("should be unconfigured")
			}
		})
	}
}

func TestEmailDefaults(t *testing.T) {
	t.Parallel()
	e := NewEmail(EmailConfig{Host: "h", Username: "cell@example.com", Password: "p"}, logx.Nop())
	if e.cfg.Port != 465 {
		t.Fatalf("default port = %d, want 465", e.cfg.Port)
	}
	if e.cfg.From != "cell@example.com" {
		t.Fatalf("default from = %q, want username", e.cfg.From)
	}
}

func TestEmailRejectsBadAddress(t *testing.T) {
	t.Parallel()
	e := NewEmail(EmailConfig{Host: "h", Username: "cell@example.com", Password: "p"}, logx.Nop())
	// Address validation fails before any network dial, so this must return
	// false without error propagation.
	if e.Send(context.Background(), "not-an-address", testPayload()) {
		t.Fatal("send to invalid address should fail")
	}
}
