package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestListe_LifecycleAndProposals(t *testing.T) {
	liste, err := NewListe("l-1", " CP 2026 ", "", "CP")
	require.NoError(t, err)
	require.Equal(t, "CP 2026", liste.Titre)
	require.Equal(t, StatutBrouillon, liste.Statut)

	require.ErrorIs(t, liste.Publish(time.Now()), ErrNoBesoins)
	require.NoError(t, liste.AddBesoin("b-1", "Cahier 96 pages", 0, "grands carreaux"))
	require.Equal(t, 1, liste.Besoins[0].Quantite)

	assoc := Association{ID: "a-1", ProductID: "p-1", StoreID: "s-1", Prix: decimal.RequireFromString("2.40")}
	require.ErrorIs(t, liste.Propose("b-1", assoc), ErrNotPublished)

	require.NoError(t, liste.Publish(time.Now()))
	require.NoError(t, liste.Propose("b-1", assoc))
	require.ErrorIs(t, liste.Propose("b-1", assoc), ErrAlreadyProposed)
	require.ErrorIs(t, liste.Propose("b-9", Association{ProductID: "p-2", Prix: decimal.NewFromInt(1)}), ErrBesoinNotFound)
	require.ErrorIs(t, liste.Propose("b-1", Association{ProductID: "p-3"}), ErrInvalidPrix)

	_, ok := liste.Besoins[0].ValidatedPrice()
	require.False(t, ok)

	require.NoError(t, liste.Validate("b-1", "a-1", time.Now()))
	price, ok := liste.Besoins[0].ValidatedPrice()
	require.True(t, ok)
	require.True(t, price.Equal(decimal.RequireFromString("2.40")))
	require.Equal(t, BesoinSatisfait, liste.Besoins[0].Statut)

	liste.Archive(time.Now())
	require.ErrorIs(t, liste.Publish(time.Now()), ErrArchived)
}

func TestNewListe_RequiresTitre(t *testing.T) {
	_, err := NewListe("l", "  ", "", "")
	require.ErrorIs(t, err, ErrEmptyTitre)
}
