package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("number", isNumber); err != nil {
		panic(err)
	}
	return v
}

// numberPattern accepts plain decimal numbers with an optional exponent of
// at most three digits: "12", "-3.5", ".5", "1e3". Hex, Inf and NaN fail.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d{1,3})?$`)

func isNumber(fl validator.FieldLevel) bool {
	return numberPattern.MatchString(fl.Field().String())
}

// validateInput runs the struct tags of input and returns the collected
// field messages. The result is never nil; callers add their own checks and
// finish with Err().
func validateInput(input interface{}) *ValidationError {
	verr := newValidationError()

	err := validate.Struct(input)
	if err == nil {
		return verr
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		panic(err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			key := fieldKey(fe.Namespace())
			verr.Add(key, fieldMessage(key, fe))
		}
	}
	return verr
}

// fieldKey turns "FanInput.klub[0]" into "klub.0".
func fieldKey(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

// attributeName is the human form of a field key used inside messages.
func attributeName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func fieldMessage(key string, fe validator.FieldError) string {
	attr := attributeName(key)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("The %s field must have at least %s items.", attr, fe.Param())
		case reflect.String:
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s field must be greater than %s.", attr, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "datetime":
		return dateFormatMessage(key)
	case "number":
		return fmt.Sprintf("The %s field must be a number.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func uniqueMessage(key string) string {
	return fmt.Sprintf("The %s has already been taken.", attributeName(key))
}

func invalidSelectionMessage(key string) string {
	return fmt.Sprintf("The selected %s is invalid.", attributeName(key))
}

func dateFormatMessage(key string) string {
	return fmt.Sprintf("The %s field must match the format Y-m-d.", attributeName(key))
}
