package channel

import (
	"context"

	"placemsg/internal/transport"
	"placemsg/pkg/logx"
)

// Chat sends the group broadcast through the chat transport.
// Fire-and-forget: no retry, no receipt beyond the transport's ack.
type Chat struct {
	sender transport.Sender
	target transport.ChatTarget
	log    logx.Logger
}

// NewChat wires the group channel. sender may be nil when the bot token is
// missing; the channel then reports itself unconfigured.
func NewChat(sender transport.Sender, groupID int64, log logx.Logger) *Chat {
	return &Chat{
		sender: sender,
		target: transport.ChatTarget{ChatID: groupID},
		log:    log,
	}
}

func (c *Chat) Configured() bool {
	return c != nil && c.sender != nil && c.target.ChatID != 0
}

func (c *Chat) Send(ctx context.Context, text string) bool {
	if !c.Configured() {
		return false
	}
	_, err := c.sender.SendText(ctx, c.target, text, &transport.SendOptions{DisablePreview: true})
	if err != nil {
		c.log.Error("failed to send Telegram message",
			logx.Int64("chat_id", c.target.ChatID),
			logx.Err(err),
		)
		return false
	}
	c.log.Info("Telegram message sent", logx.Int64("chat_id", c.target.ChatID))
	return true
}
