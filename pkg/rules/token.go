package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Check is a single validation predicate. It receives the raw field value and
// whether the field was present in its request section.
type Check func(value any, present bool) bool

// Token is one element of a field's rule list: a bare identifier
// ("notEmpty", "isEmail"), a parameterized constraint ({min: 0},
// {isIn: [...]}), or a custom predicate. Tokens are immutable configuration;
// interpretation happens once, at compile time.
type Token struct {
	name string
	arg  any
	fn   Check
}

// Bare creates a token from a bare identifier.
func Bare(name string) Token {
	return Token{name: name}
}

// Min creates a numeric lower-bound token.
func Min(v float64) Token {
	return Token{name: "min", arg: v}
}

// Max creates a numeric upper-bound token.
func Max(v float64) Token {
	return Token{name: "max", arg: v}
}

// MinLength creates a length lower-bound token.
func MinLength(n int) Token {
	return Token{name: "minLength", arg: n}
}

// MaxLength creates a length upper-bound token.
func MaxLength(n int) Token {
	return Token{name: "maxLength", arg: n}
}

// OneOf creates an allowed-value-set token.
func OneOf(values ...string) Token {
	return Token{name: "isIn", arg: values}
}

// Matches creates a pattern-match token. The pattern is compiled when the
// rule set is, so a malformed pattern is a configuration error.
func Matches(pattern string) Token {
	return Token{name: "matches", arg: pattern}
}

// Custom wraps a predicate function as a token.
func Custom(fn Check) Token {
	return Token{name: "custom", fn: fn}
}

// String returns the token name for error reporting.
func (t Token) String() string {
	if t.arg != nil {
		return fmt.Sprintf("%s(%v)", t.name, t.arg)
	}
	return t.name
}

// UnmarshalYAML decodes a token from either a scalar identifier or a
// single-entry mapping, the two shapes rule-set files use:
//
//	rules: [notEmpty, isFloat, {min: 0}]
func (t *Token) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*t = Bare(name)
		return nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("rule token mapping must have exactly one key, got %d", len(node.Content)/2)
		}
		key := node.Content[0].Value
		val := node.Content[1]

		switch key {
		case "min", "max":
			var n float64
			if err := val.Decode(&n); err != nil {
				return fmt.Errorf("rule token %q: %w", key, err)
			}
			*t = Token{name: key, arg: n}
		case "minLength", "maxLength":
			var n int
			if err := val.Decode(&n); err != nil {
				return fmt.Errorf("rule token %q: %w", key, err)
			}
			*t = Token{name: key, arg: n}
		case "isIn":
			var values []string
			if err := val.Decode(&values); err != nil {
				return fmt.Errorf("rule token %q: %w", key, err)
			}
			*t = Token{name: key, arg: values}
		case "matches":
			var pattern string
			if err := val.Decode(&pattern); err != nil {
				return fmt.Errorf("rule token %q: %w", key, err)
			}
			*t = Token{name: key, arg: pattern}
		default:
			// Unknown keys decode successfully so the registry can report a
			// ConfigError with rule-set context instead of a YAML position.
			*t = Token{name: key}
		}
		return nil

	default:
		return fmt.Errorf("rule token must be a string or a single-entry mapping")
	}
}
