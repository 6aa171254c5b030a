package hostfuncs

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/reglet-dev/reglet-codec/codec"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "encoding" accepts any name codec.LookupEncoding recognizes.
	if err := v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, ok := codec.LookupEncoding(fl.Field().String())
		return ok
	}); err != nil {
		panic(err)
	}
	return v
}

// validateRequest runs struct validation on req. Non-struct requests pass.
func validateRequest(req any) error {
	v := reflect.ValueOf(req)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validate.Struct(req)
}
