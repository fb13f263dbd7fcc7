package rules

import (
	"errors"
	"fmt"
)

// ErrUnknownRuleSet is returned when applying a rule set name that was never
// registered.
var ErrUnknownRuleSet = errors.New("unknown rule set")

// ConfigError describes malformed rule-set configuration: an unknown token,
// a bad argument, or an invalid pattern. It is produced at registry
// construction so broken configuration stops startup instead of failing open
// at request time.
type ConfigError struct {
	RuleSet string
	Field   string
	Token   string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule set %q, field %q, token %q: %v", e.RuleSet, e.Field, e.Token, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
