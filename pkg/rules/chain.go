package rules

// FieldRule declares validation for one request field: a dotted field
// descriptor, the ordered rule tokens to apply, and the message reported when
// any of them fails. One message covers the whole chain; fields needing
// per-check attribution are declared as several FieldRule entries.
type FieldRule struct {
	Field   string  `yaml:"field"`
	Rules   []Token `yaml:"rules"`
	Message string  `yaml:"message"`
}

// FieldValidator is one compiled, runnable field chain.
type FieldValidator struct {
	location Location
	name     string
	message  string
	steps    []step
}

// Location returns the request section the validator reads from.
func (v FieldValidator) Location() Location {
	return v.location
}

// Field returns the bare field name failures are keyed by.
func (v FieldValidator) Field() string {
	return v.name
}

// compileRule folds a field rule's tokens, in order, into one validator.
func compileRule(fr FieldRule) (FieldValidator, error) {
	loc, name := SplitField(fr.Field)

	v := FieldValidator{
		location: loc,
		name:     name,
		message:  fr.Message,
		steps:    make([]step, 0, len(fr.Rules)),
	}

	for _, token := range fr.Rules {
		s, err := interpret(token)
		if err != nil {
			return FieldValidator{}, &ConfigError{Field: fr.Field, Token: token.String(), Err: err}
		}
		v.steps = append(v.steps, s)
	}

	return v, nil
}

// apply runs the chain against the request, appending the chain message once
// per failing check. An "optional" step stops the chain early when the field
// is absent or empty; otherwise every check runs.
func (v FieldValidator) apply(req Request, errs Errors) {
	value, present := req.lookup(v.location, v.name)

	for _, s := range v.steps {
		if s.optional {
			if !present || isEmpty(value) {
				return
			}
			continue
		}
		if !s.check(value, present) {
			errs.add(v.name, v.message)
		}
	}
}
