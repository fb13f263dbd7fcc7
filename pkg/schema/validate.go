package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dealkit/dealkit/pkg/sanitizer"
	"github.com/dealkit/dealkit/pkg/validator"
)

// Outcome is the collected result of one validation pass.
type Outcome struct {
	Errors map[string][]string
}

// Valid reports whether no check failed.
func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// Validate runs the schema against a raw payload in one pass and returns the
// normalized payload plus the outcome. Every violation is collected; unknown
// top-level keys are stripped; defaults and coercions are applied in schema
// order. On success callers should replace the original payload with the
// normalized one so downstream code never sees unvalidated input.
func (s *Schema) Validate(payload map[string]any) (map[string]any, Outcome) {
	normalized := make(map[string]any, len(s.fields))
	errs := make(map[string][]string)

	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := s.fields[name]

		var raw any
		var present bool
		if payload != nil {
			raw, present = payload[name]
		}

		if !present || raw == nil {
			if field.Default != nil {
				normalized[name] = field.Default
			} else if field.Required {
				addError(errs, name, "field is required")
			}
			continue
		}

		if value, ok := s.checkValue(name, name, field, raw, errs); ok {
			normalized[name] = value
		}
	}

	for _, cc := range s.crossChecks {
		if field, message, ok := cc(normalized); !ok {
			addError(errs, field, message)
		}
	}

	if len(errs) == 0 {
		return normalized, Outcome{}
	}
	return normalized, Outcome{Errors: errs}
}

// checkValue coerces and checks one value. declPath addresses the field in
// the schema declaration ("prefs.currency", "tags[]"); errKey is the key
// violations are reported under ("prefs.currency", "tags[2]").
func (s *Schema) checkValue(declPath, errKey string, f Field, raw any, errs map[string][]string) (any, bool) {
	switch f.Type {
	case String:
		sv, ok := raw.(string)
		if !ok {
			addError(errs, errKey, "must be a string")
			return nil, false
		}
		sv = applyTransforms(sv, f.Transforms)
		s.checkString(declPath, errKey, f, sv, errs)
		return sv, true

	case Int:
		n, ok := intValue(raw)
		if !ok {
			addError(errs, errKey, "must be an integer")
			return nil, false
		}
		s.checkBounds(errKey, f, float64(n), errs)
		return n, true

	case Float:
		n, ok := floatValue(raw)
		if !ok {
			addError(errs, errKey, "must be a number")
			return nil, false
		}
		s.checkBounds(errKey, f, n, errs)
		return n, true

	case Bool:
		b, ok := boolValue(raw)
		if !ok {
			addError(errs, errKey, "must be a boolean")
			return nil, false
		}
		return b, true

	case Object:
		m, ok := raw.(map[string]any)
		if !ok {
			addError(errs, errKey, "must be an object")
			return nil, false
		}
		return s.checkObject(declPath, errKey, f, m, errs), true

	case Array:
		arr, ok := raw.([]any)
		if !ok {
			addError(errs, errKey, "must be an array")
			return nil, false
		}
		if f.MinLen != nil && len(arr) < *f.MinLen {
			addError(errs, errKey, fmt.Sprintf("must have at least %d items", *f.MinLen))
		}
		if f.MaxLen != nil && len(arr) > *f.MaxLen {
			addError(errs, errKey, fmt.Sprintf("must have at most %d items", *f.MaxLen))
		}
		out := make([]any, 0, len(arr))
		for i, elem := range arr {
			elemKey := fmt.Sprintf("%s[%d]", errKey, i)
			if value, ok := s.checkValue(declPath+"[]", elemKey, *f.Elem, elem, errs); ok {
				out = append(out, value)
			}
		}
		return out, true
	}

	return nil, false
}

// checkObject walks a nested object's declared sub-fields, stripping unknown
// keys and applying the same required/default semantics as the top level.
func (s *Schema) checkObject(declPath, errKey string, f Field, m map[string]any, errs map[string][]string) map[string]any {
	out := make(map[string]any, len(f.Fields))

	subNames := make([]string, 0, len(f.Fields))
	for sub := range f.Fields {
		subNames = append(subNames, sub)
	}
	sort.Strings(subNames)

	for _, sub := range subNames {
		subField := f.Fields[sub]
		raw, present := m[sub]

		if !present || raw == nil {
			if subField.Default != nil {
				out[sub] = subField.Default
			} else if subField.Required {
				addError(errs, errKey+"."+sub, "field is required")
			}
			continue
		}

		if value, ok := s.checkValue(declPath+"."+sub, errKey+"."+sub, subField, raw, errs); ok {
			out[sub] = value
		}
	}

	return out
}

func (s *Schema) checkString(declPath, errKey string, f Field, sv string, errs map[string][]string) {
	switch f.Format {
	case FormatEmail:
		if !validator.IsEmail(sv) {
			addError(errs, errKey, "must be a valid email address")
		}
	case FormatURL:
		if !validator.IsURL(sv) {
			addError(errs, errKey, "must be a valid URL")
		}
	case FormatDate:
		if !validator.IsISODate(sv) {
			addError(errs, errKey, "must be an ISO-8601 date")
		}
	case FormatSlug:
		if !validator.IsSlug(sv) {
			addError(errs, errKey, "must be a URL slug")
		}
	case FormatObjectID:
		if !validator.IsObjectID(sv) {
			addError(errs, errKey, "must be a valid identifier")
		}
	case FormatCode:
		if !validator.IsCouponCode(sv) {
			addError(errs, errKey, "must be a valid code")
		}
	}

	if f.MinLen != nil && len(sv) < *f.MinLen {
		addError(errs, errKey, fmt.Sprintf("must be at least %d characters long", *f.MinLen))
	}
	if f.MaxLen != nil && len(sv) > *f.MaxLen {
		addError(errs, errKey, fmt.Sprintf("must be at most %d characters long", *f.MaxLen))
	}

	if f.Enum != nil {
		found := false
		for _, allowed := range f.Enum {
			if allowed == sv {
				found = true
				break
			}
		}
		if !found {
			addError(errs, errKey, "must be one of: "+strings.Join(f.Enum, ", "))
		}
	}

	if re, ok := s.patterns[declPath]; ok && !re.MatchString(sv) {
		addError(errs, errKey, "has an invalid format")
	}
}

func (s *Schema) checkBounds(errKey string, f Field, n float64, errs map[string][]string) {
	if f.Min != nil && n < *f.Min {
		addError(errs, errKey, fmt.Sprintf("must be at least %v", *f.Min))
	}
	if f.Max != nil && n > *f.Max {
		addError(errs, errKey, fmt.Sprintf("must be at most %v", *f.Max))
	}
}

func addError(errs map[string][]string, field, message string) {
	errs[field] = append(errs[field], message)
}

func applyTransforms(sv string, transforms []Transform) string {
	for _, tr := range transforms {
		switch tr {
		case Trim:
			sv = sanitizer.Trim(sv)
		case Lower:
			sv = sanitizer.ToLower(sv)
		case Upper:
			sv = sanitizer.ToUpper(sv)
		}
	}
	return sv
}

// intValue coerces integer-valued JSON numbers, Go ints and numeric strings.
func intValue(v any) (int64, bool) {
	switch val := v.(type) {
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int64:
		return val, true
	case float64:
		if val == float64(int64(val)) {
			return int64(val), true
		}
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func boolValue(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		switch val {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
