package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/dealkit/dealkit/pkg/validator"
)

// step is one compiled check in a field chain. The optional flag marks the
// position of an "optional" token: when the field is absent or empty at that
// point, the rest of the chain is skipped.
type step struct {
	optional bool
	check    Check
}

// bareChecks is the closed table of bare-identifier tokens. Anything not in
// this table (and not "optional" or a custom predicate) is a configuration
// error, reported when the rule set is compiled.
var bareChecks = map[string]Check{
	"notEmpty": func(v any, present bool) bool {
		return present && !isEmpty(v)
	},
	"isString":   presentAnd(func(v any) bool { _, ok := v.(string); return ok }),
	"isInt":      presentAnd(isInt),
	"isFloat":    presentAnd(func(v any) bool { _, ok := numericValue(v); return ok }),
	"isBoolean":  presentAnd(isBoolean),
	"isArray":    presentAnd(isArray),
	"isObject":   presentAnd(isObject),
	"isEmail":    stringCheck(validator.IsEmail),
	"isURL":      stringCheck(validator.IsURL),
	"isDate":     stringCheck(validator.IsISODate),
	"isSlug":     stringCheck(validator.IsSlug),
	"isObjectID": stringCheck(validator.IsObjectID),
	"isCode":     stringCheck(validator.IsCouponCode),
}

// interpret maps one token to a compiled step.
func interpret(t Token) (step, error) {
	if t.fn != nil {
		return step{check: t.fn}, nil
	}

	switch t.name {
	case "optional":
		return step{optional: true}, nil

	case "min", "max":
		bound, ok := t.arg.(float64)
		if !ok {
			return step{}, fmt.Errorf("token %q requires a numeric argument", t.name)
		}
		lower := t.name == "min"
		return step{check: presentAnd(func(v any) bool {
			n, ok := numericValue(v)
			if !ok {
				return false
			}
			if lower {
				return n >= bound
			}
			return n <= bound
		})}, nil

	case "minLength", "maxLength":
		bound, ok := t.arg.(int)
		if !ok {
			return step{}, fmt.Errorf("token %q requires an integer argument", t.name)
		}
		lower := t.name == "minLength"
		return step{check: presentAnd(func(v any) bool {
			n, ok := lengthOf(v)
			if !ok {
				return false
			}
			if lower {
				return n >= bound
			}
			return n <= bound
		})}, nil

	case "isIn":
		allowed, ok := t.arg.([]string)
		if !ok || len(allowed) == 0 {
			return step{}, fmt.Errorf("token %q requires a non-empty value list", t.name)
		}
		set := make(map[string]struct{}, len(allowed))
		for _, v := range allowed {
			set[v] = struct{}{}
		}
		return step{check: presentAnd(func(v any) bool {
			s, ok := scalarString(v)
			if !ok {
				return false
			}
			_, found := set[s]
			return found
		})}, nil

	case "matches":
		pattern, ok := t.arg.(string)
		if !ok {
			return step{}, fmt.Errorf("token %q requires a pattern argument", t.name)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return step{}, fmt.Errorf("token %q: invalid pattern: %w", t.name, err)
		}
		return step{check: stringCheck(re.MatchString)}, nil

	default:
		if check, ok := bareChecks[t.name]; ok {
			return step{check: check}, nil
		}
		return step{}, fmt.Errorf("unknown rule token %q", t.name)
	}
}

func presentAnd(fn func(any) bool) Check {
	return func(v any, present bool) bool {
		return present && fn(v)
	}
}

func stringCheck(fn func(string) bool) Check {
	return presentAnd(func(v any) bool {
		s, ok := v.(string)
		return ok && fn(s)
	})
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// numericValue coerces JSON numbers, Go integer types, and numeric strings.
// Query and path parameters always arrive as strings, so string coercion is
// part of the contract, not a convenience.
func numericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return n, err == nil
	}
	return 0, false
}

func isInt(v any) bool {
	switch val := v.(type) {
	case int, int32, int64:
		return true
	case float64:
		return val == float64(int64(val))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return err == nil
	}
	return false
}

func isBoolean(v any) bool {
	switch val := v.(type) {
	case bool:
		return true
	case string:
		return val == "true" || val == "false"
	}
	return false
}

func isArray(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

func isObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func lengthOf(v any) (int, bool) {
	switch val := v.(type) {
	case string:
		return len(val), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	}
	return "", false
}
