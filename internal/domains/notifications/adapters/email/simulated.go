package email

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

var _ ports.EmailSender = (*SimulatedSender)(nil)

// SimulatedSender logs emails instead of sending them.
type SimulatedSender struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewSimulatedSender(logger *slog.Logger) *SimulatedSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimulatedSender{logger: logger, now: time.Now}
}

func (s *SimulatedSender) Send(ctx context.Context, email domain.Email) (string, error) {
	id := ports.SimulatedEmailPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
	s.logger.LogAttrs(ctx, slog.LevelInfo, "email simulated",
		slog.String("message_id", id),
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
		slog.Int("text_bytes", len(email.Text)),
		slog.Int("html_bytes", len(email.HTML)),
	)
	return id, nil
}
