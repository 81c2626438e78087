// Package schema validates payloads crossing the backend API boundary.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError describes a single field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field error found in a payload.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets callers match any validation failure with errors.Is(err, ErrInvalid).
func (e ValidationErrors) Is(target error) bool {
	return target == ErrInvalid
}

// ErrInvalid matches every ValidationErrors value.
var ErrInvalid = errors.New("invalid payload")

// Struct validates a struct by its `validate` tags.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return convert(err)
	}
	return nil
}

// DishList validates a dish list envelope.
func DishList(res *model.DishListResponse) error {
	return Struct(res)
}

// CategoryList validates a category list envelope.
func CategoryList(res *model.CategoryListResponse) error {
	return Struct(res)
}

// Dish validates a single dish.
func Dish(d *model.Dish) error {
	return Struct(d)
}

// Category validates a single category.
func Category(c *model.Category) error {
	return Struct(c)
}

// CreateCategoryBody validates a category create or update body.
func CreateCategoryBody(body *model.CreateCategoryBody) error {
	return Struct(body)
}

// CreateDishBody validates a dish create or update body.
func CreateDishBody(body *model.CreateDishBody) error {
	var errs ValidationErrors
	if err := validate.Struct(body); err != nil {
		errs = append(errs, convert(err).(ValidationErrors)...)
	}
	if body.Price.IsNegative() {
		errs = append(errs, FieldError{Field: "price", Message: "must be greater than or equal to 0"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GuestCreateOrdersBody validates an order submission.
func GuestCreateOrdersBody(body model.GuestCreateOrdersBody) error {
	if len(body) == 0 {
		return ValidationErrors{{Field: "orders", Message: "must contain at least one line"}}
	}

	var errs ValidationErrors
	for i := range body {
		if err := validate.Struct(&body[i]); err != nil {
			for _, fe := range convert(err).(ValidationErrors) {
				fe.Field = fmt.Sprintf("orders[%d].%s", i, fe.Field)
				errs = append(errs, fe)
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func convert(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
