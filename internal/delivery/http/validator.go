package http

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidations installs the custom binding rules used by request
// structs. switchtoken accepts only the canonical ON/OFF pair (case-
// insensitive) or an empty value; legacy records in storage may carry
// arbitrary strings, but new writes through the API stay canonical.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("switchtoken", func(fl validator.FieldLevel) bool {
		switch strings.ToUpper(strings.TrimSpace(fl.Field().String())) {
		case "", "ON", "OFF":
			return true
		default:
			return false
		}
	})
}
