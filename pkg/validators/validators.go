// Package validators provides the stock checks fields run during the
// validate phase. Each helper returns a forms.Validator closed over its
// configuration.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formfield/pkg/forms"
)

var errRequired = errors.New("this field is required")

// Required fails when the field is unset or holds only whitespace.
func Required() forms.Validator {
	return func(_ *forms.Form, field forms.Field) error {
		value := field.Data()
		if value == nil {
			return errRequired
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return errRequired
		}
		return nil
	}
}

// MinLength fails when a string value is shorter than min runes.
func MinLength(min int) forms.Validator {
	return func(_ *forms.Form, field forms.Field) error {
		s, ok := field.Data().(string)
		if !ok {
			return nil
		}
		if len([]rune(s)) < min {
			return fmt.Errorf("must be at least %d characters", min)
		}
		return nil
	}
}

// MaxLength fails when a string value is longer than max runes.
func MaxLength(max int) forms.Validator {
	return func(_ *forms.Form, field forms.Field) error {
		s, ok := field.Data().(string)
		if !ok {
			return nil
		}
		if len([]rune(s)) > max {
			return fmt.Errorf("must be at most %d characters", max)
		}
		return nil
	}
}

// Pattern fails when a string value does not match the expression.
func Pattern(expr string) forms.Validator {
	re, compileErr := regexp.Compile(expr)
	return func(_ *forms.Form, field forms.Field) error {
		if compileErr != nil {
			return fmt.Errorf("invalid pattern %q: %w", expr, compileErr)
		}
		s, ok := field.Data().(string)
		if !ok || s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return fmt.Errorf("must match pattern %s", expr)
		}
		return nil
	}
}

// Min fails when a numeric value is below the threshold.
func Min(min float64) forms.Validator {
	return func(_ *forms.Form, field forms.Field) error {
		value, ok := numeric(field.Data())
		if !ok {
			return nil
		}
		if value < min {
			return fmt.Errorf("must be at least %v", min)
		}
		return nil
	}
}

// Max fails when a numeric value is above the threshold.
func Max(max float64) forms.Validator {
	return func(_ *forms.Form, field forms.Field) error {
		value, ok := numeric(field.Data())
		if !ok {
			return nil
		}
		if value > max {
			return fmt.Errorf("must be at most %v", max)
		}
		return nil
	}
}

func numeric(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
