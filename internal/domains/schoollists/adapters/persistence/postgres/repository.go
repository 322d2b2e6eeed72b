package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists school lists in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListeRecord maps listes_scolaires.
type ListeRecord struct {
	ID          string         `gorm:"primaryKey;column:id;type:uuid"`
	Titre       string         `gorm:"column:titre;not null"`
	Description string         `gorm:"column:description"`
	Classe      string         `gorm:"column:classe"`
	Statut      string         `gorm:"column:statut;type:varchar(16);index"`
	Besoins     []BesoinRecord `gorm:"foreignKey:ListeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (ListeRecord) TableName() string { return "listes_scolaires" }

// BesoinRecord maps besoins.
type BesoinRecord struct {
	ID           string              `gorm:"primaryKey;column:id;type:uuid"`
	ListeID      string              `gorm:"column:liste_id;type:uuid;index"`
	Position     int                 `gorm:"column:position"`
	NomProduit   string              `gorm:"column:nom_produit;not null"`
	Quantite     int                 `gorm:"column:quantite;not null;default:1"`
	Details      string              `gorm:"column:details"`
	Statut       string              `gorm:"column:statut;type:varchar(16)"`
	Associations []AssociationRecord `gorm:"foreignKey:BesoinID;constraint:OnDelete:CASCADE"`
}

func (BesoinRecord) TableName() string { return "besoins" }

// AssociationRecord maps produit_associations.
type AssociationRecord struct {
	ID        string          `gorm:"primaryKey;column:id;type:uuid"`
	BesoinID  string          `gorm:"column:besoin_id;type:uuid;uniqueIndex:idx_association_besoin_product"`
	ProductID string          `gorm:"column:product_id;type:uuid;uniqueIndex:idx_association_besoin_product"`
	StoreID   string          `gorm:"column:store_id;type:uuid;index"`
	Prix      decimal.Decimal `gorm:"column:prix;type:numeric(12,2);not null"`
	Statut    string          `gorm:"column:statut;type:varchar(16)"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (AssociationRecord) TableName() string { return "produit_associations" }

// Save upserts the list, its besoins and their associations in one transaction.
func (r *Repository) Save(ctx context.Context, liste *domain.ListeScolaire) (*domain.ListeScolaire, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if liste == nil {
		return nil, errors.New("school list is nil")
	}
	record := toRecord(liste)
	besoins := record.Besoins
	record.Besoins = nil
	var associations []AssociationRecord
	for i := range besoins {
		associations = append(associations, besoins[i].Associations...)
		besoins[i].Associations = nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"titre", "description", "classe", "statut", "updated_at"}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if len(besoins) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"position", "nom_produit", "quantite", "details", "statut"}),
			}).Create(&besoins).Error; err != nil {
				return err
			}
		}
		if len(associations) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"prix", "statut"}),
			}).Create(&associations).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, liste.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ListeScolaire, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record ListeRecord
	if err := r.preloaded(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByBesoin(ctx context.Context, besoinID string) (*domain.ListeScolaire, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var besoin BesoinRecord
	if err := r.db.WithContext(ctx).Select("liste_id").First(&besoin, "id = ?", besoinID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, besoin.ListeID)
}

func (r *Repository) List(ctx context.Context, statut domain.Statut) ([]*domain.ListeScolaire, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.preloaded(ctx)
	if statut != "" {
		query = query.Where("statut = ?", string(statut))
	}
	var records []ListeRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.ListeScolaire, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Besoins", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Besoins.Associations", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") })
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres school list repository not configured")
	}
	return nil
}

func toRecord(l *domain.ListeScolaire) ListeRecord {
	rec := ListeRecord{
		ID:          l.ID,
		Titre:       l.Titre,
		Description: l.Description,
		Classe:      l.Classe,
		Statut:      string(l.Statut),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	for i, b := range l.Besoins {
		br := BesoinRecord{
			ID:         b.ID,
			ListeID:    l.ID,
			Position:   i,
			NomProduit: b.NomProduit,
			Quantite:   b.Quantite,
			Details:    b.Details,
			Statut:     string(b.Statut),
		}
		for _, a := range b.Associations {
			br.Associations = append(br.Associations, AssociationRecord{
				ID:        a.ID,
				BesoinID:  b.ID,
				ProductID: a.ProductID,
				StoreID:   a.StoreID,
				Prix:      a.Prix,
				Statut:    string(a.Statut),
				CreatedAt: a.CreatedAt,
			})
		}
		rec.Besoins = append(rec.Besoins, br)
	}
	return rec
}

func (r ListeRecord) toDomain() *domain.ListeScolaire {
	l := &domain.ListeScolaire{
		ID:          r.ID,
		Titre:       r.Titre,
		Description: r.Description,
		Classe:      r.Classe,
		Statut:      domain.Statut(r.Statut),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, br := range r.Besoins {
		b := domain.Besoin{
			ID:         br.ID,
			ListeID:    br.ListeID,
			NomProduit: br.NomProduit,
			Quantite:   br.Quantite,
			Details:    br.Details,
			Statut:     domain.BesoinStatut(br.Statut),
		}
		for _, ar := range br.Associations {
			b.Associations = append(b.Associations, domain.Association{
				ID:        ar.ID,
				BesoinID:  ar.BesoinID,
				ProductID: ar.ProductID,
				StoreID:   ar.StoreID,
				Prix:      ar.Prix,
				Statut:    domain.AssociationStatut(ar.Statut),
				CreatedAt: ar.CreatedAt,
			})
		}
		l.Besoins = append(l.Besoins, b)
	}
	return l
}
