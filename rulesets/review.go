package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func reviewCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.storeId",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid store id is required",
		},
		{
			Field:   "body.rating",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isInt"), rules.Min(1), rules.Max(5)},
			Message: "Rating must be an integer between 1 and 5",
		},
		{
			Field:   "body.comment",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(1000)},
			Message: "Comment must be at most 1000 characters",
		},
	}
}
