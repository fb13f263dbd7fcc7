package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func userRegister() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.name",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MinLength(2), rules.MaxLength(80)},
			Message: "Name is required and must be between 2 and 80 characters",
		},
		{
			Field:   "body.email",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isEmail")},
			Message: "A valid email address is required",
		},
		{
			Field:   "body.password",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MinLength(8), rules.MaxLength(128)},
			Message: "Password must be between 8 and 128 characters",
		},
	}
}

func userLogin() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.email",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isEmail")},
			Message: "A valid email address is required",
		},
		{
			Field:   "body.password",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString")},
			Message: "Password is required",
		},
	}
}
