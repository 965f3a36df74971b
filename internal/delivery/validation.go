package delivery

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidators sync.Once

// registerBindingValidators adds the custom tags used on request structs to
// gin's validator. The tags panic at bind time if this never ran.
func registerBindingValidators() {
	registerValidators.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("delivery: gin binding engine is not go-playground/validator")
		}
		if err := v.RegisterValidation("cents", validCents); err != nil {
			panic(err)
		}
	})
}

// validCents accepts amounts with at most two decimal places, which is what
// a NUMERIC(10, 2) column stores without rounding.
func validCents(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
		return false
	}
	s := strconv.FormatFloat(field.Float(), 'f', -1, 64)
	dot := strings.IndexByte(s, '.')
	return dot < 0 || len(s)-dot-1 <= 2
}
