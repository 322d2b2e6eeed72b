package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/adapters/memory"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	"github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
)

type fakeOwnership map[string]string

func (f fakeOwnership) StoreOf(_ context.Context, productID string) (string, error) {
	storeID, ok := f[productID]
	if !ok {
		return "", errors.New("product not found")
	}
	return storeID, nil
}

func newService(t *testing.T) *Service {
	t.Helper()
	clock := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	svc := NewService(memory.NewRepository(), WithProductOwnership(fakeOwnership{"p-1": "s-1", "p-2": "s-2"}))
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func createList(t *testing.T, svc *Service, titre string) *domain.ListeScolaire {
	t.Helper()
	liste, err := svc.CreateList(context.Background(), ports.CreateListInput{
		Titre:   titre,
		Classe:  "CE1",
		Besoins: []ports.BesoinInput{{NomProduit: "Cahier", Quantite: 4}, {NomProduit: "Stylo bleu"}},
	})
	require.NoError(t, err)
	return liste
}

func TestListPublished_OnlyPublishedNewestFirst(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	older := createList(t, svc, "CE1 A")
	newer := createList(t, svc, "CE1 B")
	createList(t, svc, "Brouillon")

	_, err := svc.Publish(ctx, older.ID)
	require.NoError(t, err)
	_, err = svc.Publish(ctx, newer.ID)
	require.NoError(t, err)

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, published, 2)
	require.Equal(t, newer.ID, published[0].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestGetList_HidesDrafts(t *testing.T) {
	svc := newService(t)
	draft := createList(t, svc, "Draft")
	_, err := svc.GetList(context.Background(), draft.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProposeAndValidate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	liste := createList(t, svc, "CP")
	besoinID := liste.Besoins[0].ID

	_, err := svc.ProposeProduct(ctx, ports.ProposeProductInput{BesoinID: besoinID, ProductID: "p-1", StoreID: "s-1", Prix: decimal.NewFromInt(2)})
	require.ErrorIs(t, err, domain.ErrNotPublished)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Publish(ctx, liste.ID)
	require.NoError(t, err)

	_, err = svc.ProposeProduct(ctx, ports.ProposeProductInput{BesoinID: besoinID, ProductID: "p-2", StoreID: "s-1", Prix: decimal.NewFromInt(2)})
	require.ErrorIs(t, err, ErrForeignProduct)

	updated, err := svc.ProposeProduct(ctx, ports.ProposeProductInput{BesoinID: besoinID, ProductID: "p-1", StoreID: "s-1", Prix: decimal.NewFromInt(2)})
	require.NoError(t, err)
	require.Len(t, updated.Besoins[0].Associations, 1)
	assoc := updated.Besoins[0].Associations[0]
	require.Equal(t, domain.AssociationProposee, assoc.Statut)

	validated, err := svc.ValidateAssociation(ctx, besoinID, assoc.ID)
	require.NoError(t, err)
	price, ok := validated.Besoins[0].ValidatedPrice()
	require.True(t, ok)
	require.True(t, price.Equal(decimal.NewFromInt(2)))

	_, err = svc.ProposeProduct(ctx, ports.ProposeProductInput{BesoinID: "nope", ProductID: "p-1", StoreID: "s-1", Prix: decimal.NewFromInt(2)})
	require.ErrorIs(t, err, domain.ErrBesoinNotFound)
}

func TestCreateList_Validation(t *testing.T) {
	svc := newService(t)
	_, err := svc.CreateList(context.Background(), ports.CreateListInput{Titre: ""})
	require.ErrorIs(t, err, domain.ErrEmptyTitre)

	_, err = svc.CreateList(context.Background(), ports.CreateListInput{Titre: "x", Besoins: []ports.BesoinInput{{NomProduit: ""}}})
	require.ErrorIs(t, err, ErrInvalidInput)
}
