package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists in-app notifications in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NotificationRecord maps a notification to the notifications table.
type NotificationRecord struct {
	ID        string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID    string         `gorm:"column:user_id;type:uuid;index:idx_notifications_user_read"`
	Title     string         `gorm:"column:title;not null"`
	Message   string         `gorm:"column:message;type:text"`
	Type      string         `gorm:"column:type;type:varchar(20)"`
	Meta      map[string]any `gorm:"column:meta;type:jsonb;serializer:json"`
	Read      bool           `gorm:"column:read;default:false;index:idx_notifications_user_read"`
	CreatedAt time.Time      `gorm:"column:created_at;index"`
}

func (NotificationRecord) TableName() string { return "notifications" }

func (r *Repository) Save(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, errors.New("notification is nil")
	}
	record := toRecord(n)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"read"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record NotificationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]*domain.Notification, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	var records []NotificationRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres notification repository not configured")
	}
	return nil
}

func toRecord(n *domain.Notification) NotificationRecord {
	return NotificationRecord{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Meta:      n.Meta,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (r NotificationRecord) toDomain() *domain.Notification {
	meta := r.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	return &domain.Notification{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      domain.Type(r.Type),
		Meta:      meta,
		Read:      r.Read,
		CreatedAt: r.CreatedAt,
	}
}
