package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// StructValidator plugs go-playground/validator into fiber's binder so
// c.Bind().Body validates every request DTO after decoding.
type StructValidator struct {
	validate *validator.Validate
}

func NewStructValidator() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &StructValidator{validate: v}
}

func (s *StructValidator) Validate(out any) error {
	return s.validate.Struct(out)
}

// ValidationMessage turns the first field failure into a short sentence,
// e.g. "email is required".
func ValidationMessage(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field()), true
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field()), true
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field()), true
	default:
		return fmt.Sprintf("%s is invalid", fe.Field()), true
	}
}
