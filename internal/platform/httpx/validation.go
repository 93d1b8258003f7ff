package httpx

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds a validator that reports field names by their json
// tag, so the per-field map in the error envelope matches the wire shape
// rather than Go struct field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldErrors flattens validator output into the per-field message map
// carried by the error envelope. It returns nil when err is nil.
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Error()
		}
	} else {
		fields["request"] = err.Error()
	}
	return fields
}
