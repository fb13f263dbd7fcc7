package validator

import (
	"fmt"
	"strings"
	"unicode"
)

// RequiredString validates that a string is not empty after trimming.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// MinLenString validates a minimum string length in bytes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// MaxLenString validates a maximum string length in bytes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// ValidEmail validates that value is a usable email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// MinNum validates a numeric lower bound.
func MinNum[T Numeric](field string, value, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %v", min),
		},
	}
}

// MaxNum validates a numeric upper bound.
func MaxNum[T Numeric](field string, value, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %v", max),
		},
	}
}

// InList validates membership in an allowed value set.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range allowed {
				if v == value {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		},
	}
}

// PasswordConfig describes the accepted password shape.
type PasswordConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // of: lowercase, uppercase, digit, symbol
}

// DefaultPasswordConfig requires 8-128 chars from at least two character
// classes, which keeps signup friction low without allowing trivial values.
var DefaultPasswordConfig = PasswordConfig{
	MinLength:      8,
	MaxLength:      128,
	MinCharClasses: 2,
}

// StrongPassword validates password strength against cfg.
func StrongPassword(field, value string, cfg PasswordConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < cfg.MinLength || len(value) > cfg.MaxLength {
				return false
			}
			return charClasses(value) >= cfg.MinCharClasses
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"must be %d-%d characters with at least %d character types",
				cfg.MinLength, cfg.MaxLength, cfg.MinCharClasses,
			),
		},
	}
}

func charClasses(s string) int {
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	n := 0
	for _, ok := range []bool{lower, upper, digit, symbol} {
		if ok {
			n++
		}
	}
	return n
}
