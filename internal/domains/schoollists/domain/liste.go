package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Statut is the publication state of a school list.
type Statut string

const (
	StatutBrouillon Statut = "BROUILLON"
	StatutPubliee   Statut = "PUBLIEE"
	StatutArchivee  Statut = "ARCHIVEE"
)

// BesoinStatut tracks whether a need has a validated product.
type BesoinStatut string

const (
	BesoinEnAttente BesoinStatut = "EN_ATTENTE"
	BesoinSatisfait BesoinStatut = "SATISFAIT"
)

// AssociationStatut is the review state of a seller proposal.
type AssociationStatut string

const (
	AssociationProposee AssociationStatut = "PROPOSEE"
	AssociationValidee  AssociationStatut = "VALIDEE"
)

var (
	ErrEmptyTitre          = errors.New("titre is required")
	ErrEmptyNomProduit     = errors.New("nomProduit is required")
	ErrInvalidQuantite     = errors.New("quantite must be greater than zero")
	ErrNoBesoins           = errors.New("a list needs at least one besoin before publication")
	ErrNotPublished        = errors.New("list is not published")
	ErrArchived            = errors.New("list is archived")
	ErrBesoinNotFound      = errors.New("besoin not found")
	ErrAssociationNotFound = errors.New("association not found")
	ErrAlreadyProposed     = errors.New("product already proposed for this besoin")
	ErrInvalidPrix         = errors.New("prix must be greater than zero")
)

// Association links a seller product to a besoin at a proposed price.
type Association struct {
	ID        string
	BesoinID  string
	ProductID string
	StoreID   string
	Prix      decimal.Decimal
	Statut    AssociationStatut
	CreatedAt time.Time
}

// Besoin is one line of a school list.
type Besoin struct {
	ID           string
	ListeID      string
	NomProduit   string
	Quantite     int
	Details      string
	Statut       BesoinStatut
	Associations []Association
}

// ValidatedPrice returns the price of the first validated association.
func (b Besoin) ValidatedPrice() (decimal.Decimal, bool) {
	for _, a := range b.Associations {
		if a.Statut == AssociationValidee {
			return a.Prix, true
		}
	}
	return decimal.Zero, false
}

// ListeScolaire is a class supply list curated by managers.
type ListeScolaire struct {
	ID          string
	Titre       string
	Description string
	Classe      string
	Statut      Statut
	Besoins     []Besoin
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewListe builds a draft list.
func NewListe(id, titre, description, classe string) (*ListeScolaire, error) {
	titre = strings.TrimSpace(titre)
	if titre == "" {
		return nil, ErrEmptyTitre
	}
	return &ListeScolaire{
		ID:          id,
		Titre:       titre,
		Description: strings.TrimSpace(description),
		Classe:      strings.TrimSpace(classe),
		Statut:      StatutBrouillon,
	}, nil
}

// AddBesoin appends a need; quantite defaults to 1.
func (l *ListeScolaire) AddBesoin(id, nomProduit string, quantite int, details string) error {
	if l.Statut == StatutArchivee {
		return ErrArchived
	}
	nomProduit = strings.TrimSpace(nomProduit)
	if nomProduit == "" {
		return ErrEmptyNomProduit
	}
	if quantite == 0 {
		quantite = 1
	}
	if quantite < 0 {
		return ErrInvalidQuantite
	}
	l.Besoins = append(l.Besoins, Besoin{
		ID:         id,
		ListeID:    l.ID,
		NomProduit: nomProduit,
		Quantite:   quantite,
		Details:    strings.TrimSpace(details),
		Statut:     BesoinEnAttente,
	})
	return nil
}

// Publish makes a draft visible to sellers and customers.
func (l *ListeScolaire) Publish(now time.Time) error {
	switch l.Statut {
	case StatutArchivee:
		return ErrArchived
	case StatutPubliee:
		return nil
	}
	if len(l.Besoins) == 0 {
		return ErrNoBesoins
	}
	l.Statut = StatutPubliee
	l.UpdatedAt = now
	return nil
}

// Archive withdraws the list.
func (l *ListeScolaire) Archive(now time.Time) {
	l.Statut = StatutArchivee
	l.UpdatedAt = now
}

// IsPublished reports whether the list is visible.
func (l *ListeScolaire) IsPublished() bool {
	return l.Statut == StatutPubliee
}

// Besoin returns a pointer to the named need.
func (l *ListeScolaire) Besoin(besoinID string) (*Besoin, error) {
	for i := range l.Besoins {
		if l.Besoins[i].ID == besoinID {
			return &l.Besoins[i], nil
		}
	}
	return nil, ErrBesoinNotFound
}

// Propose records a seller product for a besoin of a published list.
func (l *ListeScolaire) Propose(besoinID string, association Association) error {
	if !l.IsPublished() {
		return ErrNotPublished
	}
	if !association.Prix.IsPositive() {
		return ErrInvalidPrix
	}
	besoin, err := l.Besoin(besoinID)
	if err != nil {
		return err
	}
	for _, existing := range besoin.Associations {
		if existing.ProductID == association.ProductID {
			return ErrAlreadyProposed
		}
	}
	association.BesoinID = besoinID
	association.Statut = AssociationProposee
	besoin.Associations = append(besoin.Associations, association)
	return nil
}

// Validate accepts a proposal; the besoin becomes satisfied.
func (l *ListeScolaire) Validate(besoinID, associationID string, now time.Time) error {
	besoin, err := l.Besoin(besoinID)
	if err != nil {
		return err
	}
	for i := range besoin.Associations {
		if besoin.Associations[i].ID == associationID {
			besoin.Associations[i].Statut = AssociationValidee
			besoin.Statut = BesoinSatisfait
			l.UpdatedAt = now
			return nil
		}
	}
	return ErrAssociationNotFound
}
