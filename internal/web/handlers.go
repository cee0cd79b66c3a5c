package web

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"placemsg/internal/message"
	"placemsg/internal/roster"
	"placemsg/pkg/logx"
)

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if req.Username != s.cfg.AdminUsername || req.Password != s.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password. Please try again."})
		return
	}
	token := s.sessions.create(req.Username)
	c.SetCookie(sessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
	s.log.Info("admin logged in", logx.String("username", req.Username))
	c.JSON(http.StatusOK, gin.H{"message": "Login successful! Welcome to the admin panel."})
}

func (s *Server) handleLogout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		s.sessions.drop(token)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out successfully."})
}

func (s *Server) handleCreateMessage(c *gin.Context) {
	var op message.Opportunity
	if err := c.ShouldBind(&op); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := op.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := c.GetString("session_token")
	if !s.sessions.setPending(token, op) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login to access the admin panel."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Message created successfully! Now upload student list to send notifications.",
	})
}

func (s *Server) handleUploadStudents(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.cfg.MaxUploadMB)<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please upload an Excel file (.xlsx or .xls)"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error: could not read uploaded file"})
		return
	}
	defer f.Close()

	recipients, parseMsg, err := roster.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error: " + err.Error()})
		return
	}

	token := c.GetString("session_token")
	pending := s.sessions.pending(token)
	if pending == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please create a message first"})
		return
	}

	rec, err := s.coord.Broadcast(c.Request.Context(), recipients, *pending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Successfully sent messages to %d students!", rec.RecipientCount),
		"parsed":   parseMsg,
		"delivery": rec,
	})
}

func (s *Server) handleTemplate(c *gin.Context) {
	b, err := roster.Template()
	if err != nil {
		s.log.Error("template generation failed", logx.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate template"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+roster.TemplateFilename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
}

type sendTestReq struct {
	TestEmail string `json:"test_email" form:"test_email"`
}

// handleSendTest pushes a canned opportunity through both channels so admins
// can verify credentials without a real roster.
func (s *Server) handleSendTest(c *gin.Context) {
	var req sendTestReq
	_ = c.ShouldBind(&req)

	testOp := message.Opportunity{
		Title:            "Test Message",
		CompanyName:      "Test Company",
		JobTitle:         "Test Position",
		CTCUG:            "3-5 LPA",
		Stipend:          "Rs. 15k/month",
		Eligibility:      "Test eligibility criteria",
		RegistrationLink: "https://example.com",
		AdditionalNotes:  "This is a test message",
	}

	chatOK := false
	if s.chat != nil && s.chat.Configured() {
		text := "🧪 **Test Message**\n\nThis is a test message to verify the system is working correctly.\n\n" +
			"**Company:** " + testOp.CompanyName + "\n**Job Title:** " + testOp.JobTitle +
			"\n\n✅ If you see this message, Telegram is working properly!"
		chatOK = s.chat.Send(c.Request.Context(), text)
	} else {
		s.log.Warn("Telegram group not configured for test message")
	}

	// Without an explicit address the test goes to the sender itself, so the
	// email leg is still exercised.
	addr := strings.TrimSpace(req.TestEmail)
	if addr == "" {
		addr = strings.TrimSpace(s.cfg.TestEmailFallback)
	}
	emailOK := false
	if addr != "" && s.email != nil && s.email.Configured() {
		payload, err := message.Email(testOp, "Test User")
		if err == nil {
			emailOK = s.email.Send(c.Request.Context(), addr, payload)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Test message sent successfully",
		"telegram": chatOK,
		"email":    emailOK,
	})
}

func (s *Server) handleDeliveries(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	c.JSON(http.StatusOK, gin.H{"deliveries": s.led.Recent(limit)})
}
