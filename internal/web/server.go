// Package web exposes the admin surface over HTTP: login, message creation,
// roster upload, template download, and the delivery history. Handlers are
// JSON-only; the pipeline behind them lives in internal/fanout.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"placemsg/internal/channel"
	"placemsg/internal/fanout"
	"placemsg/internal/ledger"
	"placemsg/pkg/logx"
)

type Config struct {
	Addr          string
	CORSOrigins   []string
	MaxUploadMB   int
	AdminUsername string
	AdminPassword string

	// TestEmailFallback receives the test email when the request names no
	// address. Usually the configured sender address.
	TestEmailFallback string
}

const defaultMaxUploadMB = 16

type Server struct {
	cfg      Config
	coord    *fanout.Coordinator
	led      *ledger.Ledger
	chat     channel.ChatSender
	email    channel.EmailSender
	sessions *sessionStore
	log      logx.Logger

	engine *gin.Engine
	srv    *http.Server
}

func NewServer(cfg Config, coord *fanout.Coordinator, led *ledger.Ledger, chat channel.ChatSender, email channel.EmailSender, log logx.Logger) *Server {
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = defaultMaxUploadMB
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		coord:    coord,
		led:      led,
		chat:     chat,
		email:    email,
		sessions: newSessionStore(),
		log:      log,
		engine:   engine,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.engine
	r.Use(s.requestLog())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	r.POST("/api/login", s.handleLogin)
	r.POST("/api/logout", s.handleLogout)

	admin := r.Group("/api/admin", s.requireSession)
	admin.POST("/messages", s.handleCreateMessage)
	admin.POST("/upload-students", s.handleUploadStudents)
	admin.GET("/template", s.handleTemplate)
	admin.POST("/send-test", s.handleSendTest)
	admin.GET("/deliveries", s.handleDeliveries)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("admin server listening", logx.String("addr", s.cfg.Addr))
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			logx.String("method", c.Request.Method),
			logx.String("path", c.Request.URL.Path),
			logx.Int("status", c.Writer.Status()),
			logx.Duration("took", time.Since(start)),
		)
	}
}

func (s *Server) requireSession(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	if s.sessions.get(token) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Please login to access the admin panel.",
		})
		return
	}
	c.Set("session_token", token)
	c.Next()
}
