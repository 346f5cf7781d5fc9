package config

import (
	"os"
	"strconv"
	"sync"
)

type MailConfig struct {
	User string
	Pass string
	Host string
	Port int
}

var (
	mailConfig *MailConfig
	mailOnce   sync.Once
)

func LoadMailConfig() *MailConfig {
	mailOnce.Do(func() {
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			host = "smtp.gmail.com"
		}
		port := 465
		if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
			port = p
		}
		mailConfig = &MailConfig{
			User: os.Getenv("EMAIL_USER"),
			Pass: os.Getenv("EMAIL_PASS"),
			Host: host,
			Port: port,
		}
	})
	return mailConfig
}

// Configured reports whether sender credentials are present. Without them
// the notifier is disabled, not a startup failure.
func (c *MailConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}
