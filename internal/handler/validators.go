package handler

import (
	"reflect"
	"strings"
	"sync"

	"github.com/corpsite/internal/service"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators 让校验错误使用 json 字段名，并注册 rating 规则。
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
			return service.ValidRating(int(fl.Field().Int()))
		})
	})
}
