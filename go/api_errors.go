package marketplaceserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-marketplace/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-marketplace/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-marketplace/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-marketplace/internal/domains/catalog/ports"
	identityapp "github.com/Apurer/go-gin-marketplace/internal/domains/identity/application"
	identityports "github.com/Apurer/go-gin-marketplace/internal/domains/identity/ports"
	notificationsapp "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/application"
	notificationsports "github.com/Apurer/go-gin-marketplace/internal/domains/notifications/ports"
	ordersapp "github.com/Apurer/go-gin-marketplace/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-marketplace/internal/domains/orders/ports"
	schoollistsapp "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/application"
	schoollistsdomain "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/domain"
	schoollistsports "github.com/Apurer/go-gin-marketplace/internal/domains/schoollists/ports"
	storesapp "github.com/Apurer/go-gin-marketplace/internal/domains/stores/application"
	storesports "github.com/Apurer/go-gin-marketplace/internal/domains/stores/ports"
	supportapp "github.com/Apurer/go-gin-marketplace/internal/domains/support/application"
	supportports "github.com/Apurer/go-gin-marketplace/internal/domains/support/ports"
	apierrors "github.com/Apurer/go-gin-marketplace/internal/shared/errors"
)

// responder maps every bounded context's errors to RFC 7807 problems.
var responder = apierrors.NewResponder("",
	stockErrorMapper,
	notFoundErrorMapper,
	conflictErrorMapper,
	authErrorMapper,
	invalidInputErrorMapper,
)

// respondProblem sends a ready-made problem.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError maps err through the chain, falling back to 500.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondBindError answers a failed ShouldBindJSON.
func respondBindError(c *gin.Context, err error) {
	if fields, ok := fieldErrors(err); ok {
		respondProblem(c, apierrors.NewValidationProblem(fields))
		return
	}
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func stockErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var orderStock *ordersapp.InsufficientStockError
	if errors.As(err, &orderStock) {
		return apierrors.NewInsufficientStockProblem(err.Error(), orderStock.ProductID, orderStock.Available, orderStock.Requested), true
	}
	var cartStock *cartdomain.StockLimitError
	if errors.As(err, &cartStock) {
		return apierrors.NewInsufficientStockProblem(err.Error(), cartStock.ProductID, cartStock.Available, cartStock.Requested), true
	}
	if errors.Is(err, catalogdomain.ErrInsufficientStock) || errors.Is(err, ordersports.ErrInsufficientStock) {
		return apierrors.ErrInsufficientStock.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, identityports.ErrNotFound),
		errors.Is(err, storesports.ErrNotFound),
		errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, catalogports.ErrCategoryNotFound),
		errors.Is(err, ordersports.ErrNotFound),
		errors.Is(err, ordersports.ErrProductNotFound),
		errors.Is(err, cartports.ErrProductNotFound),
		errors.Is(err, cartports.ErrSchoolListNotFound),
		errors.Is(err, cartdomain.ErrItemNotFound),
		errors.Is(err, schoollistsports.ErrNotFound),
		errors.Is(err, schoollistsdomain.ErrBesoinNotFound),
		errors.Is(err, schoollistsdomain.ErrAssociationNotFound),
		errors.Is(err, supportports.ErrNotFound),
		errors.Is(err, notificationsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func conflictErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrCategoryExists),
		errors.Is(err, catalogports.ErrIdempotencyConflict),
		errors.Is(err, schoollistsdomain.ErrAlreadyProposed):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func authErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, identityapp.ErrAuthentication),
		errors.Is(err, ordersapp.ErrAuthenticationRequired),
		errors.Is(err, supportapp.ErrAuthenticationRequired),
		errors.Is(err, notificationsapp.ErrAuthenticationRequired):
		return apierrors.NewUnauthorizedProblem(err.Error()), true
	case errors.Is(err, schoollistsapp.ErrForeignProduct):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, identityapp.ErrInvalidInput),
		errors.Is(err, identityports.ErrEmailTaken),
		errors.Is(err, identityports.ErrUnsupportedProvider),
		errors.Is(err, storesapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidInput),
		errors.Is(err, schoollistsapp.ErrInvalidInput),
		errors.Is(err, supportapp.ErrInvalidInput),
		errors.Is(err, notificationsapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrStorageUnavailable):
		return apierrors.ErrServiceUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
