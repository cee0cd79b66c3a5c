package config

type Config struct {
	Server   ServerConfig   `json:"server"`
	Admin    AdminConfig    `json:"admin"`
	Telegram TelegramConfig `json:"telegram"`
	Email    EmailConfig    `json:"email"`
	Fanout   FanoutConfig   `json:"fanout"`
	Logging  LoggingConfig  `json:"logging"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `json:"addr"`

	// CORSOrigins lists allowed origins. Empty means same-origin only.
	CORSOrigins []string `json:"cors_origins,omitempty"`

	// MaxUploadMB caps multipart upload size. 0 means the 16 MiB default.
	MaxUploadMB int `json:"max_upload_mb,omitempty"`
}

type AdminConfig struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TelegramConfig configures the group-chat channel.
// An empty token disables the channel (the fan-out skips it with a warning).
type TelegramConfig struct {
	Token string `json:"token"`

	// GroupID is the placement group chat id (negative for supergroups).
	GroupID int64 `json:"group_id"`
}

// EmailConfig configures the email channel.
// Empty username/password disables the channel.
type EmailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port,omitempty"` // 0 means 465 (implicit TLS)
	Username string `json:"username"`
	Password string `json:"password"`

	// From overrides the envelope sender; defaults to Username.
	From string `json:"from,omitempty"`
}

type FanoutConfig struct {
	// RatePerSec paces individual email sends. 0 means 10.
	RatePerSec int `json:"rate_per_sec,omitempty"`

	// SendTimeout bounds a single channel send ("15s" default).
	SendTimeout string `json:"send_timeout,omitempty"`
}

type LoggingConfig struct {
	Level   string        `json:"level,omitempty"`
	Console bool          `json:"console"`
	File    LogFileConfig `json:"file"`
}

type LogFileConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}
