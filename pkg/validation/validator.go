package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/devconnector/devconnector-api/pkg/response"
)

// Init configures the global validator used by Gin's binding to report
// JSON tag names instead of Go field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// ToFieldErrors converts binding/validation errors into the wire's
// {field, msg} array.
func ToFieldErrors(err error) []response.FieldError {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return []response.FieldError{{Field: "payload", Msg: "invalid json"}}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]response.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, response.FieldError{Field: fe.Field(), Msg: formatFieldError(fe)})
		}
		return out
	}

	return []response.FieldError{{Field: "payload", Msg: "invalid payload"}}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	default:
		if param != "" {
			return "failed validation '" + fe.Tag() + "' with parameter '" + param + "'"
		}
		return "failed validation '" + fe.Tag() + "'"
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
