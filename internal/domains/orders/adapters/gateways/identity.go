package gateways

import (
	"context"

	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
	"github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
)

var _ ports.Customers = (*IdentityCustomers)(nil)

// IdentityCustomers resolves guest checkouts to customer accounts.
type IdentityCustomers struct {
	identity identityports.Service
}

func NewIdentityCustomers(identity identityports.Service) *IdentityCustomers {
	return &IdentityCustomers{identity: identity}
}

func (g *IdentityCustomers) FindOrCreateGuest(ctx context.Context, email, name string) (string, error) {
	user, err := g.identity.FindOrCreateGuest(ctx, email, name)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}
