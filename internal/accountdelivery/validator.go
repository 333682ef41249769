package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/corebank/ledger/internal/domain"
)

// ValidAccountType checks that the bound field holds a supported account type.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		return domain.IsSupportedAccountType(t)
	}

	return false
}
