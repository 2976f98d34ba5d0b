package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/farmastock/almacen-api/internal/domain"
)

// validate instancia compartida; los structs de este paquete llevan tags
// `validate:` que se evalúan aquí.
var validate = validator.New()

// Validate evalúa las tags de validación del struct y traduce el primer
// fallo a un ValidationError de dominio (→ HTTP 400).
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("no cumple la regla '%s'", fe.Tag()))
	}
	return domain.ErrInvalidInput
}
