package services

import (
	"fmt"
	"reflect"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var recordValidator = newRecordValidator()

// newRecordValidator validates domain records before they are written.
// decimal.Decimal fields are compared as float64 so numeric tags such as gt=0 apply.
func newRecordValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func validateRecord(record any) error {
	if err := recordValidator.Struct(record); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}
