package gateways

import (
	"context"

	notificationsdomain "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	notificationsports "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.Notifier = (*InAppNotifier)(nil)

// InAppNotifier forwards order notifications to the notifications context.
type InAppNotifier struct {
	notifications notificationsports.Service
}

func NewInAppNotifier(notifications notificationsports.Service) *InAppNotifier {
	return &InAppNotifier{notifications: notifications}
}

func (g *InAppNotifier) Notify(ctx context.Context, n ports.Notification) error {
	_, err := g.notifications.Notify(ctx, notificationsports.NotifyInput{
		UserID:  n.UserID,
		Title:   n.Title,
		Message: n.Message,
		Type:    notificationsdomain.Type(n.Type),
		Meta:    n.Meta,
	})
	return err
}
