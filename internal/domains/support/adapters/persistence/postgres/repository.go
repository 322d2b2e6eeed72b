package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/support/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists support tickets in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TicketRecord maps a ticket to the support_tickets table.
type TicketRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID      *string   `gorm:"column:user_id;type:uuid;index"`
	Name        string    `gorm:"column:name"`
	Email       string    `gorm:"column:email;index"`
	Subject     string    `gorm:"column:subject;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	Category    string    `gorm:"column:category;type:varchar(20);default:OTHER"`
	Priority    string    `gorm:"column:priority;type:varchar(20);default:MEDIUM"`
	Status      string    `gorm:"column:status;type:varchar(20);default:OPEN;index"`
	OrderNumber string    `gorm:"column:order_number;type:varchar(40)"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (TicketRecord) TableName() string { return "support_tickets" }

func (r *Repository) Save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errors.New("ticket is nil")
	}
	record := toRecord(ticket)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "priority", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record TicketRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []TicketRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	tickets := make([]*domain.Ticket, 0, len(records))
	for i := range records {
		tickets = append(tickets, records[i].toDomain())
	}
	return tickets, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres ticket repository not configured")
	}
	return nil
}

func toRecord(t *domain.Ticket) TicketRecord {
	rec := TicketRecord{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		Subject:     t.Subject,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		OrderNumber: t.OrderNumber,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.UserID != "" {
		userID := t.UserID
		rec.UserID = &userID
	}
	return rec
}

func (r TicketRecord) toDomain() *domain.Ticket {
	t := &domain.Ticket{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Subject:     r.Subject,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Priority:    domain.Priority(r.Priority),
		Status:      domain.Status(r.Status),
		OrderNumber: r.OrderNumber,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.UserID != nil {
		t.UserID = *r.UserID
	}
	return t
}
