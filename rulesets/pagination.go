package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func pagination() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "query.page",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isInt"), rules.Min(1)},
			Message: "Page must be a positive integer",
		},
		{
			Field:   "query.perPage",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isInt"), rules.Min(1), rules.Max(100)},
			Message: "Per page must be between 1 and 100",
		},
		{
			Field:   "query.startDate",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isDate")},
			Message: "Start date must be an ISO-8601 date",
		},
		{
			Field:   "query.endDate",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isDate")},
			Message: "End date must be an ISO-8601 date",
		},
	}
}
