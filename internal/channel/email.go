package channel

import (
	"context"
	"strings"

	mail "github.com/wneessen/go-mail"

	"placemsg/internal/message"
	"placemsg/pkg/logx"
)

type EmailConfig struct {
	Host     string
	Port     int // 0 means 465
	Username string
	Password string
	From     string // defaults to Username
}

// Email submits over implicit TLS, one message per recipient. Each send opens
// a fresh authenticated session; there is no connection pooling.
type Email struct {
	cfg EmailConfig
	log logx.Logger
}

func NewEmail(cfg EmailConfig, log logx.Logger) *Email {
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if strings.TrimSpace(cfg.From) == "" {
		cfg.From = cfg.Username
	}
	return &Email{cfg: cfg, log: log}
}

func (e *Email) Configured() bool {
	return e != nil &&
		strings.TrimSpace(e.cfg.Host) != "" &&
		strings.TrimSpace(e.cfg.Username) != "" &&
		strings.TrimSpace(e.cfg.Password) != ""
}

func (e *Email) Send(ctx context.Context, to string, payload message.EmailPayload) bool {
	if !e.Configured() {
		return false
	}

	m := mail.NewMsg()
	if err := m.From(e.cfg.From); err != nil {
		e.log.Error("failed to send email", logx.String("to", to), logx.Err(err))
		return false
	}
	if err := m.To(to); err != nil {
		e.log.Error("failed to send email", logx.String("to", to), logx.Err(err))
		return false
	}
	m.Subject(payload.Subject)
	m.SetBodyString(mail.TypeTextHTML, payload.HTMLBody)

	c, err := mail.NewClient(e.cfg.Host,
		mail.WithPort(e.cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(e.cfg.Username),
		mail.WithPassword(e.cfg.Password),
	)
	if err != nil {
		e.log.Error("failed to send email", logx.String("to", to), logx.Err(err))
		return false
	}
	defer c.Close()

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		e.log.Error("failed to send email", logx.String("to", to), logx.Err(err))
		return false
	}
	e.log.Info("email sent", logx.String("to", to))
	return true
}
