package mapper

import (
	"time"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
)

type Notification struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Type      string         `json:"type"`
	Meta      map[string]any `json:"meta"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

func FromDomainNotification(n *domain.Notification) Notification {
	return Notification{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Meta:      n.Meta,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func FromDomainNotifications(list []*domain.Notification) []Notification {
	out := make([]Notification, 0, len(list))
	for _, n := range list {
		out = append(out, FromDomainNotification(n))
	}
	return out
}
