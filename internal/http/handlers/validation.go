package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s cannot be negative", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than zero", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed on rule: %s", fe.Field(), fe.Tag())
}

// validateStruct returns one entry per failing field, or nil.
func validateStruct(s any) []ProductValidationError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ProductValidationError{{Field: "body", Description: err.Error()}}
	}
	errs := make([]ProductValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, ProductValidationError{Field: fe.Field(), Description: describe(fe)})
	}
	return errs
}

func validateProduct(p *ProductRequest) []ProductValidationError {
	p.SKU = strings.TrimSpace(p.SKU)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	return validateStruct(p)
}

func validateAccessRequest(in *AccessRequestInput) []ProductValidationError {
	in.BusinessName = strings.TrimSpace(in.BusinessName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	errs := validateStruct(in)
	if in.Industry != "" && !slices.Contains(models.Industries, in.Industry) {
		errs = append(errs, ProductValidationError{
			Field:       "industry",
			Description: "industry must be one of: " + strings.Join(models.Industries, ", "),
		})
	}
	return errs
}
