package rules

import (
	"fmt"
	"sort"
)

// RuleSet is the ordered list of field rules for one entity operation,
// e.g. "coupon.create". Order matters: failures are reported in rule order.
type RuleSet []FieldRule

// Errors maps bare field names to the messages that fired for them.
type Errors map[string][]string

func (e Errors) add(field, message string) {
	e[field] = append(e[field], message)
}

// Outcome is the result of running a compiled rule set against a request.
// It is plain data: validation never raises, however malformed the input.
type Outcome struct {
	Errors Errors
}

// Valid reports whether no rule fired.
func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// CompileSet compiles every field rule in order. The compiled list has
// exactly one validator per rule, in input order.
func CompileSet(rs RuleSet) ([]FieldValidator, error) {
	validators := make([]FieldValidator, 0, len(rs))
	for _, fr := range rs {
		v, err := compileRule(fr)
		if err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}
	return validators, nil
}

// Registry holds every named, compiled rule set. It is built once at startup
// and read-only afterwards, so concurrent request validation needs no locking.
type Registry struct {
	sets map[string][]FieldValidator
}

// NewRegistry compiles all named rule sets, validating the full configuration
// up front. Any unknown token or malformed argument fails construction with a
// ConfigError naming the rule set, field and token.
func NewRegistry(sets map[string]RuleSet) (*Registry, error) {
	compiled := make(map[string][]FieldValidator, len(sets))

	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		validators, err := CompileSet(sets[name])
		if err != nil {
			if cfgErr, ok := err.(*ConfigError); ok {
				cfgErr.RuleSet = name
				return nil, cfgErr
			}
			return nil, fmt.Errorf("rule set %q: %w", name, err)
		}
		compiled[name] = validators
	}

	return &Registry{sets: compiled}, nil
}

// MustNewRegistry panics on configuration errors. Rule sets are static
// startup configuration, so a broken table should stop the process.
func MustNewRegistry(sets map[string]RuleSet) *Registry {
	r, err := NewRegistry(sets)
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a rule set with the given name exists.
func (r *Registry) Has(name string) bool {
	_, ok := r.sets[name]
	return ok
}

// Names returns the sorted rule set names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named rule set against the request, returning a fresh
// Outcome. Validators run in registration order and never short-circuit
// across fields.
func (r *Registry) Apply(name string, req Request) (Outcome, error) {
	validators, ok := r.sets[name]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownRuleSet, name)
	}

	outcome := Outcome{Errors: make(Errors)}
	for _, v := range validators {
		v.apply(req, outcome.Errors)
	}
	return outcome, nil
}
