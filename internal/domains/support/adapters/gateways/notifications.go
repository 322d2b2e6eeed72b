package gateways

import (
	"context"

	notificationsdomain "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	notificationsports "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

var _ ports.Mailer = (*NotificationsMailer)(nil)

// NotificationsMailer sends support emails through the notifications context.
type NotificationsMailer struct {
	notifications notificationsports.Service
}

func NewNotificationsMailer(notifications notificationsports.Service) *NotificationsMailer {
	return &NotificationsMailer{notifications: notifications}
}

func (m *NotificationsMailer) Send(ctx context.Context, to, subject, text, html string) error {
	_, err := m.notifications.SendEmail(ctx, notificationsdomain.Email{To: to, Subject: subject, Text: text, HTML: html})
	return err
}
