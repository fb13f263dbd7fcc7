package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func cashbackCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MaxLength(140)},
			Message: "Title is required and must be at most 140 characters",
		},
		{
			Field:   "body.rate",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isFloat"), rules.Min(0), rules.Max(100)},
			Message: "Cashback rate must be between 0 and 100 percent",
		},
		{
			Field:   "body.storeId",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid store id is required",
		},
		{
			Field:   "body.category",
			Rules:   []rules.Token{rules.Bare("optional"), rules.OneOf(CouponCategories...)},
			Message: "Category is not recognized",
		},
		{
			Field:   "body.maxCashback",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isFloat"), rules.Min(0)},
			Message: "Maximum cashback must be a positive number",
		},
		{
			Field:   "body.expiresAt",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isDate")},
			Message: "Expiry must be an ISO-8601 date",
		},
	}
}

func cashbackUpdate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.id",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid offer id is required",
		},
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(140)},
			Message: "Title must be at most 140 characters",
		},
		{
			Field:   "body.rate",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isFloat"), rules.Min(0), rules.Max(100)},
			Message: "Cashback rate must be between 0 and 100 percent",
		},
		{
			Field:   "body.maxCashback",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isFloat"), rules.Min(0)},
			Message: "Maximum cashback must be a positive number",
		},
	}
}
