package email

import (
	"log/slog"
	"strings"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

// Config selects and configures email delivery.
type Config struct {
	Environment string
	SendReal    bool
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
}

// Deliver reports whether emails leave the process. Only production or an
// explicit SEND_REAL_EMAILS opt-in reach SMTP.
func (c Config) Deliver() bool {
	return strings.EqualFold(c.Environment, "production") || c.SendReal
}

// NewSender returns an SMTP sender when delivery is enabled and a host is
// configured, otherwise a sender that only logs.
func NewSender(cfg Config, logger *slog.Logger) ports.EmailSender {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Deliver() {
		return NewSimulatedSender(logger)
	}
	if cfg.Host == "" {
		logger.Warn("email delivery enabled without SMTP_HOST; falling back to simulated emails")
		return NewSimulatedSender(logger)
	}
	sender, err := NewSMTPSender(cfg)
	if err != nil {
		logger.Warn("SMTP misconfigured; falling back to simulated emails", slog.String("error", err.Error()))
		return NewSimulatedSender(logger)
	}
	return sender
}
