package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Ошибки называют поля так же, как они приходят в JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks the validate tags of input and writes a 422 response when they fail.
func validateInput(w http.ResponseWriter, r *http.Request, input interface{}) bool {
	err := validate.Struct(input)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		serverErrorResponse(w, r, err)
		return false
	}
	failedValidationResponse(w, r, validationMessages(verrs))
	return false
}

func validationMessages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "must be provided"
		case "max":
			if fe.Kind() == reflect.Slice {
				msg = fmt.Sprintf("must not contain more than %s items", fe.Param())
			} else {
				msg = fmt.Sprintf("must not be longer than %s characters", fe.Param())
			}
		case "gte":
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		case "lte":
			msg = fmt.Sprintf("must be at most %s", fe.Param())
		default:
			msg = "is invalid"
		}
		out[fe.Field()] = msg
	}
	return out
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errs)
}
