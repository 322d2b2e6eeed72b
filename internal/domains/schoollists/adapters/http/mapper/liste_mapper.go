package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

type Association struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	StoreID   string  `json:"storeId,omitempty"`
	Prix      float64 `json:"prix"`
	Statut    string  `json:"statut"`
	Validated bool    `json:"validated"`
}

type Besoin struct {
	ID           string        `json:"id"`
	NomProduit   string        `json:"nomProduit"`
	Quantite     int           `json:"quantite"`
	Details      string        `json:"details,omitempty"`
	Statut       string        `json:"statut"`
	Associations []Association `json:"produitAssociations"`
}

type ListeScolaire struct {
	ID          string    `json:"id"`
	Titre       string    `json:"titre"`
	Description string    `json:"description,omitempty"`
	Classe      string    `json:"classe,omitempty"`
	Statut      string    `json:"statut"`
	Besoins     []Besoin  `json:"besoins"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateListRequest is the manager payload for a new list.
type CreateListRequest struct {
	Titre       string `json:"titre" binding:"required,max=200"`
	Description string `json:"description"`
	Classe      string `json:"classe"`
	Besoins     []struct {
		NomProduit string `json:"nomProduit" binding:"required"`
		Quantite   int    `json:"quantite" binding:"gte=0"`
		Details    string `json:"details"`
	} `json:"besoins" binding:"dive"`
}

func (r CreateListRequest) ToInput() ports.CreateListInput {
	input := ports.CreateListInput{Titre: r.Titre, Description: r.Description, Classe: r.Classe}
	for _, b := range r.Besoins {
		input.Besoins = append(input.Besoins, ports.BesoinInput{NomProduit: b.NomProduit, Quantite: b.Quantite, Details: b.Details})
	}
	return input
}

// ProposeRequest is a seller proposing a product for a besoin.
type ProposeRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Prix      float64 `json:"prix" binding:"gt=0"`
}

func (r ProposeRequest) ToInput(besoinID, storeID string) ports.ProposeProductInput {
	return ports.ProposeProductInput{
		BesoinID:  besoinID,
		ProductID: r.ProductID,
		StoreID:   storeID,
		Prix:      decimal.NewFromFloat(r.Prix),
	}
}

func FromDomainListe(l *domain.ListeScolaire) ListeScolaire {
	out := ListeScolaire{
		ID:          l.ID,
		Titre:       l.Titre,
		Description: l.Description,
		Classe:      l.Classe,
		Statut:      string(l.Statut),
		Besoins:     make([]Besoin, 0, len(l.Besoins)),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	for _, b := range l.Besoins {
		besoin := Besoin{
			ID:           b.ID,
			NomProduit:   b.NomProduit,
			Quantite:     b.Quantite,
			Details:      b.Details,
			Statut:       string(b.Statut),
			Associations: make([]Association, 0, len(b.Associations)),
		}
		for _, a := range b.Associations {
			besoin.Associations = append(besoin.Associations, Association{
				ID:        a.ID,
				ProductID: a.ProductID,
				StoreID:   a.StoreID,
				Prix:      a.Prix.InexactFloat64(),
				Statut:    string(a.Statut),
				Validated: a.Statut == domain.AssociationValidee,
			})
		}
		out.Besoins = append(out.Besoins, besoin)
	}
	return out
}

func FromDomainListes(listes []*domain.ListeScolaire) []ListeScolaire {
	out := make([]ListeScolaire, 0, len(listes))
	for _, l := range listes {
		out = append(out, FromDomainListe(l))
	}
	return out
}
