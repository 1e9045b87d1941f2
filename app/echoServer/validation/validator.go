package validation

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// 000.000.000-00
	cpfRe = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	// (00) 0000-0000 or (00) 00000-0000
	phoneRe = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("telefone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}

// Struct exposes the underlying validator for controllers that validate
// outside echo's binding path.
func (v *Validator) Struct() *validator.Validate { return v.v }

// FieldErrors flattens a validator error into field -> failed tag pairs
// for the response body.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}
