// Package app is the composition root: it owns the config manager, the log
// service, the delivery ledger, and wires the channels into the fan-out
// coordinator and the admin HTTP server.
package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"placemsg/internal/channel"
	"placemsg/internal/config"
	"placemsg/internal/fanout"
	"placemsg/internal/ledger"
	"placemsg/internal/transport"
	"placemsg/internal/transport/telegram"
	"placemsg/internal/web"
	"placemsg/pkg/logx"
)

type App struct {
	cfgm   *config.Manager
	logSvc *logx.Service
	log    logx.Logger

	led   *ledger.Ledger
	coord *fanout.Coordinator
	web   *web.Server

	cancel context.CancelFunc
	wg     sync.WaitGroup

	errCh chan error
}

func New(cfgPath string) (*App, error) {
	config.LoadDotEnv()

	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}

	logSvc, root := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log := root.With(logx.String("comp", "app"))
	cfgm.SetLogger(root.With(logx.String("comp", "config")))

	// Chat transport is optional: a missing token disables the channel, it
	// does not stop the app (email can still go out).
	var sender transport.Sender
	if strings.TrimSpace(cfg.Telegram.Token) != "" {
		ad, aerr := telegram.New(telegram.Config{Token: cfg.Telegram.Token},
			root.With(logx.String("comp", "telegram")))
		if aerr != nil {
			log.Warn("telegram adapter init failed; chat channel disabled", logx.Err(aerr))
		} else {
			sender = ad
		}
	}

	chat := channel.NewChat(sender, cfg.Telegram.GroupID, root.With(logx.String("comp", "chat")))
	email := channel.NewEmail(channel.EmailConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	}, root.With(logx.String("comp", "email")))

	if !chat.Configured() && !email.Configured() {
		log.Warn("no delivery channel configured; broadcasts will only be recorded")
	}

	led := ledger.New()

	sendTimeout, err := config.ParseDurationOrDefault("fanout.send_timeout", cfg.Fanout.SendTimeout, 15*time.Second)
	if err != nil {
		return nil, err
	}
	coord := fanout.New(fanout.Config{
		RatePerSec:  cfg.Fanout.RatePerSec,
		SendTimeout: sendTimeout,
	}, chat, email, led, root.With(logx.String("comp", "fanout")))

	testFallback := strings.TrimSpace(cfg.Email.From)
	if testFallback == "" {
		testFallback = strings.TrimSpace(cfg.Email.Username)
	}
	webSrv := web.NewServer(web.Config{
		Addr:              cfg.Server.Addr,
		CORSOrigins:       cfg.Server.CORSOrigins,
		MaxUploadMB:       cfg.Server.MaxUploadMB,
		AdminUsername:     cfg.Admin.Username,
		AdminPassword:     cfg.Admin.Password,
		TestEmailFallback: testFallback,
	}, coord, led, chat, email, root.With(logx.String("comp", "web")))

	return &App{
		cfgm:   cfgm,
		logSvc: logSvc,
		log:    log,
		led:    led,
		coord:  coord,
		web:    webSrv,
		errCh:  make(chan error, 1),
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	// Live reload: logging sinks and fan-out pacing follow the config file;
	// credentials and the listen address are fixed for the process lifetime.
	sub := a.cfgm.Subscribe(1)
	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		defer a.cfgm.Unsubscribe(sub)
		for {
			select {
			case <-runCtx.Done():
				return
			case cfg, ok := <-sub:
				if !ok || cfg == nil {
					return
				}
				a.applyReload(cfg)
			}
		}
	}()
	go func() {
		defer a.wg.Done()
		if err := a.cfgm.Watch(runCtx); err != nil {
			a.log.Warn("config watcher stopped", logx.Err(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.web.Start(); err != nil {
			a.log.Error("admin server failed", logx.Err(err))
			select {
			case a.errCh <- err:
			default:
			}
		}
	}()

	a.log.Info("placemsg started")
	return nil
}

// Err reports a fatal server error, if any.
func (a *App) Err() <-chan error { return a.errCh }

func (a *App) applyReload(cfg *config.Config) {
	a.logSvc.Apply(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})

	sendTimeout, err := config.ParseDurationOrDefault("fanout.send_timeout", cfg.Fanout.SendTimeout, 15*time.Second)
	if err != nil {
		a.log.Warn("ignoring reloaded fanout settings", logx.Err(err))
		return
	}
	a.coord.Apply(fanout.Config{
		RatePerSec:  cfg.Fanout.RatePerSec,
		SendTimeout: sendTimeout,
	})
	a.log.Debug("runtime settings reapplied")
}

func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	err := a.web.Stop(ctx)

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	a.log.Info("placemsg stopped")
	_ = a.logSvc.Close()
	return err
}
