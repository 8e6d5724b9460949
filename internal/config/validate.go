package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%s: %s", ErrMsgInvalidConfig, strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must be set", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "max", "gt":
		return fmt.Sprintf("%s must be %s %s, got %v", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s check (value %v)", fe.Field(), fe.Tag(), fe.Value())
	}
}

// Warnings lists settings that load fine but look unsafe outside development
func (c *Config) Warnings() []string {
	var warnings []string

	if c.Environment == EnvProduction {
		if c.DBPassword == insecureDefaultPassword {
			warnings = append(warnings, "DB_PASSWORD is the default value")
		}
		if len(c.APIKey) < minProductionAPIKeyLength {
			warnings = append(warnings, fmt.Sprintf("API_KEY is shorter than %d characters", minProductionAPIKeyLength))
		}
		if c.LogFormat != "json" {
			warnings = append(warnings, "LOG_FORMAT is not json")
		}
		if len(c.TrustedProxies) == 0 {
			warnings = append(warnings, "TRUSTED_PROXIES is empty, clients are identified by peer address")
		}
	}
	return warnings
}
