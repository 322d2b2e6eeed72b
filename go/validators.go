package marketplaceserver

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	orderdomain "github.com/Apurer/go-gin-marketplace/internal/domains/orders/domain"
)

var registerOnce sync.Once

// RegisterValidators adds the marketplace enum tags to gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("order_status", validateOrderStatus)
	})
}

// validatePaymentMethod accepts any label the storefront sends ("card",
// "Hand Payment", ...); only card captures payment up front.
func validatePaymentMethod(fl validator.FieldLevel) bool {
	method := strings.TrimSpace(fl.Field().String())
	return method != "" && len(method) <= maxPaymentMethodLen
}

const maxPaymentMethodLen = 64

func validateOrderStatus(fl validator.FieldLevel) bool {
	return orderdomain.Status(strings.TrimSpace(fl.Field().String())).Valid()
}

// fieldErrors flattens validator errors for a validation problem response.
func fieldErrors(err error) (map[string]string, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if len(field) > 0 {
			field = strings.ToLower(field[:1]) + field[1:]
		}
		if fe.Param() != "" {
			out[field] = fe.Tag() + "=" + fe.Param()
			continue
		}
		out[field] = fe.Tag()
	}
	return out, true
}
