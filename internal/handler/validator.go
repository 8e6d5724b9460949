package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/QuestAcademy_Go/internal/character"
	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	requestValidator *Validator
	validatorOnce    sync.Once
)

// GetValidator returns the shared validator, building it on first use
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("stat", func(fl validator.FieldLevel) bool {
			return domain.StatName(fl.Field().String()).IsValid()
		})
		_ = v.RegisterValidation("specialization", func(fl validator.FieldLevel) bool {
			_, ok := character.PrimaryStat(domain.Specialization(fl.Field().String()))
			return ok
		})

		requestValidator = &Validator{validate: v}
	})
	return requestValidator
}

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// fieldMessages maps a failed tag to the message shown to clients; %s is the tag parameter
var fieldMessages = map[string]string{
	"required":         "This field is required",
	"required_without": "This field is required",
	"stat":             "Unknown stat",
	"specialization":   "Unknown specialization",
	"max":              "Must be at most %s",
	"min":              "Must be at least %s",
	"gte":              "Must be greater than or equal to %s",
	"excludesall":      "Contains invalid characters",
}

// FormatValidationError turns validator errors into a field → message map keyed by JSON name.
// Struct and Go field names never reach the client.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		msg, ok := fieldMessages[e.Tag()]
		if !ok {
			out[e.Field()] = "Invalid value"
			continue
		}
		if strings.Contains(msg, "%s") {
			msg = fmt.Sprintf(msg, e.Param())
		}
		out[e.Field()] = msg
	}
	return out
}
