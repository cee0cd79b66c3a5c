// Package fanout orchestrates one broadcast run: group chat first, then one
// personalized email per recipient, then a single ledger append.
package fanout

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"placemsg/internal/channel"
	"placemsg/internal/ledger"
	"placemsg/internal/message"
	"placemsg/internal/roster"
	"placemsg/pkg/logx"
)

type Config struct {
	// RatePerSec paces the per-recipient email loop. 0 means 10.
	RatePerSec int

	// SendTimeout bounds every individual channel send. 0 means 15s.
	SendTimeout time.Duration
}

// ErrBroadcastFailed is returned when a broadcast run panics. Individual send
// failures never surface as errors; they are counted and logged.
var ErrBroadcastFailed = errors.New("broadcast failed unexpectedly")

type Coordinator struct {
	mu      sync.Mutex
	cfg     Config
	limiter *rate.Limiter

	chat   channel.ChatSender
	email  channel.EmailSender
	ledger *ledger.Ledger
	log    logx.Logger
}

func New(cfg Config, chat channel.ChatSender, email channel.EmailSender, led *ledger.Ledger, log logx.Logger) *Coordinator {
	c := &Coordinator{chat: chat, email: email, ledger: led, log: log}
	c.Apply(cfg)
	return c
}

// Apply swaps pacing settings at runtime (config reload).
func (c *Coordinator) Apply(cfg Config) {
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 10
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}
	c.mu.Lock()
	c.cfg = cfg
	c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RatePerSec)
	c.mu.Unlock()
}

// Broadcast runs one complete fan-out and returns its ledger record.
//
// The group message goes out before the email loop starts (its footer quotes
// the in-flight recipient count). Individual failures never abort the batch,
// and exactly one ledger record is appended per invocation with
// Status = "sent" regardless of how many sends succeeded.
func (c *Coordinator) Broadcast(ctx context.Context, recipients []roster.Recipient, op message.Opportunity) (rec ledger.DeliveryRecord, err error) {
	if verr := op.Validate(); verr != nil {
		return ledger.DeliveryRecord{}, verr
	}

	// Once a broadcast starts it runs to completion: the caller's cancellation
	// (e.g. an admin closing the browser mid-upload) must not abandon the
	// remaining recipients. Per-send timeouts still bound each delivery.
	ctx = context.WithoutCancel(ctx)

	runID := uuid.NewString()
	log := c.log.With(logx.String("run", runID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic during broadcast",
				logx.Any("panic", r),
				logx.Stack(string(debug.Stack())),
			)
			rec = ledger.DeliveryRecord{}
			err = ErrBroadcastFailed
		}
	}()

	c.mu.Lock()
	lim := c.limiter
	timeout := c.cfg.SendTimeout
	c.mu.Unlock()

	start := time.Now()
	log.Info("broadcast started",
		logx.String("company", op.CompanyName),
		logx.Int("recipients", len(recipients)),
	)

	chatOK := 0
	if c.chat != nil && c.chat.Configured() {
		text := message.GroupChatText(op, len(recipients))
		if c.sendChat(ctx, timeout, text) {
			chatOK = 1
		}
	} else {
		log.Warn("Telegram group not configured; skipping chat channel")
	}

	emailOK := 0
	if c.email != nil && c.email.Configured() {
		for _, r := range recipients {
			if werr := lim.Wait(ctx); werr != nil {
				log.Warn("email loop interrupted", logx.Err(werr))
				break
			}
			payload, perr := message.Email(op, r.Name)
			if perr != nil {
				log.Error("email render failed", logx.String("to", r.Email), logx.Err(perr))
				continue
			}
			if c.sendEmail(ctx, timeout, r.Email, payload) {
				emailOK++
			}
		}
	} else {
		log.Warn("email credentials not configured; skipping email channel")
	}

	rec = ledger.DeliveryRecord{
		Timestamp:      time.Now(),
		CompanyName:    op.CompanyName,
		JobTitle:       op.JobTitle,
		RecipientCount: len(recipients),
		Status:         ledger.StatusSent,
	}
	rec.ID = c.ledger.Append(rec)

	log.Info("message delivery completed",
		logx.Int("telegram_ok", chatOK),
		logx.Int("email_ok", emailOK),
		logx.Int("recipients", len(recipients)),
		logx.Duration("took", time.Since(start)),
	)
	return rec, nil
}

func (c *Coordinator) sendChat(ctx context.Context, timeout time.Duration, text string) bool {
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.chat.Send(sctx, text)
}

func (c *Coordinator) sendEmail(ctx context.Context, timeout time.Duration, to string, payload message.EmailPayload) bool {
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.email.Send(sctx, to, payload)
}
