// Package channel holds the delivery boundary of the fan-out pipeline.
//
// Senders never propagate transport errors: every failure is caught here,
// logged with its destination, and reported as a boolean so the coordinator
// can count it and move on. Either channel may be left unconfigured; the
// coordinator checks Configured() and skips it with a warning.
package channel

import (
	"context"

	"placemsg/internal/message"
)

// ChatSender delivers one text blob to the fixed group destination.
type ChatSender interface {
	Configured() bool
	Send(ctx context.Context, text string) bool
}

// EmailSender delivers one rendered email to one recipient address.
type EmailSender interface {
	Configured() bool
	Send(ctx context.Context, to string, payload message.EmailPayload) bool
}
