package domain

import (
	"errors"
	"strings"
	"time"
)

// Type classifies in-app notifications.
type Type string

const (
	TypeOrderUpdate Type = "ORDER_UPDATE"
	TypeSystem      Type = "SYSTEM"
	TypeSupport     Type = "SUPPORT"
)

var (
	ErrEmptyUser      = errors.New("notification user is required")
	ErrEmptyTitle     = errors.New("notification title is required")
	ErrInvalidType    = errors.New("unknown notification type")
	ErrEmptyRecipient = errors.New("email recipient is required")
	ErrEmptyBody      = errors.New("email needs a text or html body")
)

// Notification is an in-app message shown to one user.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      Type
	Meta      map[string]any
	Read      bool
	CreatedAt time.Time
}

// NewNotification validates input; an empty type defaults to SYSTEM.
func NewNotification(id, userID, title, message string, typ Type, meta map[string]any, now time.Time) (*Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUser
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	switch typ {
	case "":
		typ = TypeSystem
	case TypeOrderUpdate, TypeSystem, TypeSupport:
	default:
		return nil, ErrInvalidType
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return &Notification{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Message:   strings.TrimSpace(message),
		Type:      typ,
		Meta:      meta,
		CreatedAt: now,
	}, nil
}

func (n *Notification) MarkRead() {
	n.Read = true
}

// Email is an outgoing message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (e Email) Validate() error {
	if strings.TrimSpace(e.To) == "" {
		return ErrEmptyRecipient
	}
	if strings.TrimSpace(e.Text) == "" && strings.TrimSpace(e.HTML) == "" {
		return ErrEmptyBody
	}
	return nil
}
