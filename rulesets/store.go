package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func storeCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.name",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MinLength(2), rules.MaxLength(120)},
			Message: "Store name is required and must be between 2 and 120 characters",
		},
		{
			Field:   "body.website",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isURL")},
			Message: "A valid website URL is required",
		},
		{
			Field:   "body.description",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(2000)},
			Message: "Description must be at most 2000 characters",
		},
		{
			Field:   "body.category",
			Rules:   []rules.Token{rules.Bare("optional"), rules.OneOf(CouponCategories...)},
			Message: "Category is not recognized",
		},
		{
			Field:   "body.logoUrl",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isURL")},
			Message: "Logo must be a valid URL",
		},
	}
}

func storeUpdate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.id",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid store id is required",
		},
		{
			Field:   "body.name",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MinLength(2), rules.MaxLength(120)},
			Message: "Store name must be between 2 and 120 characters",
		},
		{
			Field:   "body.website",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isURL")},
			Message: "Website must be a valid URL",
		},
		{
			Field:   "body.description",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(2000)},
			Message: "Description must be at most 2000 characters",
		},
	}
}
