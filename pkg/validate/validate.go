package validate

import (
	"fmt"
	"reflect"
	"strings"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct runs tag validation and reports failures under the given code.
// A failing "max" tag is reported as CodeInvalidRange since it is a length
// bound rather than a missing value.
func Struct(code pkgerrors.Code, dest any) error {
	err := validate.Struct(dest)
	if err == nil {
		return nil
	}
	return toError(code, "", err)
}

// Var validates a single value against tag, e.g. "notblank,max=200", and
// reports it under name.
func Var(code pkgerrors.Code, name string, value any, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	return toError(code, name, err)
}

func toError(code pkgerrors.Code, name string, err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validation failed")
	}

	details := map[string]string{}
	resolved := code
	var fields []string
	for _, fieldErr := range errs {
		field := fieldErr.Field()
		if field == "" {
			field = name
		}
		details[field] = validationMessage(fieldErr)
		fields = append(fields, field)
		if fieldErr.Tag() == "max" {
			resolved = pkgerrors.CodeInvalidRange
		}
	}
	return pkgerrors.Newf(resolved, "invalid %s", strings.Join(fields, ", ")).WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return "is invalid"
}
