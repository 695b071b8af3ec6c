// ABOUTME: Validation of loaded configuration with go-playground/validator.
// ABOUTME: Errors name the koanf keys a user sets, e.g. "log.file.max_size".

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
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Validate fails fast on a configuration atlas cannot run with.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(msgs, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := keyPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, condition(key, fe.Param()))
	case "min":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q (got %v)", key, fe.Tag(), fe.Value())
	}
}

// keyPath drops the root struct name: "Config.log.file.path" becomes "log.file.path".
func keyPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// condition rewrites a required_if param such as "Enabled true" against the
// sibling key: "log.file.enabled is true".
func condition(key, param string) string {
	field, value, _ := strings.Cut(param, " ")
	sibling := strings.ToLower(field)
	if i := strings.LastIndex(key, "."); i >= 0 {
		sibling = key[:i+1] + sibling
	}
	return sibling + " is " + value
}
