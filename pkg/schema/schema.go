// Package schema validates whole request payloads against a declared shape,
// producing a normalized payload alongside the full set of violations.
//
// Unlike pkg/rules, which runs token chains per field, a Schema walks every
// declared field in one pass: it strips unknown keys, applies defaults and
// declared coercions (trim, lowercase, uppercase, numeric parsing), and
// collects every failing check. Validation never raises; malformed input
// produces an all-invalid outcome, not an error.
package schema

import (
	"fmt"
	"regexp"
	"sort"
)

// Type is the declared type of a schema field.
type Type string

const (
	String Type = "string"
	Int    Type = "int"
	Float  Type = "float"
	Bool   Type = "bool"
	Object Type = "object"
	Array  Type = "array"
)

// Format names a string format check applied after type checking.
type Format string

const (
	FormatEmail    Format = "email"
	FormatURL      Format = "url"
	FormatDate     Format = "date"
	FormatSlug     Format = "slug"
	FormatObjectID Format = "objectid"
	FormatCode     Format = "code"
)

// Transform is a string coercion applied before any check, in declared order.
type Transform string

const (
	Trim  Transform = "trim"
	Lower Transform = "lower"
	Upper Transform = "upper"
)

// Field declares one payload field. Nested objects and arrays of primitives
// are supported one level deep.
type Field struct {
	Type       Type
	Required   bool
	Default    any
	Min        *float64 // numeric lower bound
	Max        *float64 // numeric upper bound
	MinLen     *int     // length lower bound (string or array)
	MaxLen     *int     // length upper bound
	Enum       []string
	Pattern    string
	Format     Format
	Transforms []Transform
	Fields     map[string]Field // sub-fields for Object
	Elem       *Field           // element shape for Array
}

// Num is a pointer helper for Min/Max bounds.
func Num(v float64) *float64 {
	return &v
}

// Len is a pointer helper for MinLen/MaxLen bounds.
func Len(n int) *int {
	return &n
}

// CrossCheck inspects the normalized payload as a whole. On violation it
// returns the field to attribute the message to and ok=false.
type CrossCheck func(payload map[string]any) (field, message string, ok bool)

// Schema is an immutable, compiled payload shape. Construct once at startup.
type Schema struct {
	name        string
	fields      map[string]Field
	patterns    map[string]*regexp.Regexp // keyed by field path
	crossChecks []CrossCheck
}

// Option configures a Schema at construction.
type Option func(*Schema)

// WithCrossCheck registers a whole-payload check run after per-field
// validation, on the normalized payload.
func WithCrossCheck(cc CrossCheck) Option {
	return func(s *Schema) {
		s.crossChecks = append(s.crossChecks, cc)
	}
}

// New compiles a schema, validating the declaration itself: patterns must
// compile, enums must be non-empty, and nesting must stay one level deep.
// A broken declaration is a configuration error and fails construction.
func New(name string, fields map[string]Field, opts ...Option) (*Schema, error) {
	s := &Schema{
		name:     name,
		fields:   fields,
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, opt := range opts {
		opt(s)
	}

	paths := make([]string, 0, len(fields))
	for fieldName := range fields {
		paths = append(paths, fieldName)
	}
	sort.Strings(paths)

	for _, fieldName := range paths {
		if err := s.compileField(fieldName, fields[fieldName], true); err != nil {
			return nil, fmt.Errorf("schema %q: %w", name, err)
		}
	}
	return s, nil
}

// MustNew panics on a broken declaration. Schemas are static startup
// configuration, so the process should not come up with a bad table.
func MustNew(name string, fields map[string]Field, opts ...Option) *Schema {
	s, err := New(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema's configured name.
func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) compileField(path string, f Field, allowNesting bool) error {
	switch f.Type {
	case String, Int, Float, Bool:
	case Object:
		if !allowNesting {
			return fmt.Errorf("field %q: objects may only nest one level deep", path)
		}
		if len(f.Fields) == 0 {
			return fmt.Errorf("field %q: object declares no sub-fields", path)
		}
		subNames := make([]string, 0, len(f.Fields))
		for sub := range f.Fields {
			subNames = append(subNames, sub)
		}
		sort.Strings(subNames)
		for _, sub := range subNames {
			if err := s.compileField(path+"."+sub, f.Fields[sub], false); err != nil {
				return err
			}
		}
	case Array:
		if !allowNesting {
			return fmt.Errorf("field %q: arrays may only nest one level deep", path)
		}
		if f.Elem == nil {
			return fmt.Errorf("field %q: array declares no element shape", path)
		}
		if err := s.compileField(path+"[]", *f.Elem, false); err != nil {
			return err
		}
	default:
		return fmt.Errorf("field %q: unknown type %q", path, f.Type)
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return fmt.Errorf("field %q: invalid pattern: %w", path, err)
		}
		s.patterns[path] = re
	}

	if f.Enum != nil && len(f.Enum) == 0 {
		return fmt.Errorf("field %q: empty enum", path)
	}

	for _, tr := range f.Transforms {
		switch tr {
		case Trim, Lower, Upper:
		default:
			return fmt.Errorf("field %q: unknown transform %q", path, tr)
		}
	}

	return nil
}
