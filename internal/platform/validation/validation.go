package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var accountCodePattern = regexp.MustCompile(`^\d{4,10}$`)

// RegisterCustomValidators attaches application validation rules to Gin's
// binding validator. Must run once before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
		return accountCodePattern.MatchString(fl.Field().String())
	})
}
