package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

func blogCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MinLength(3), rules.MaxLength(160)},
			Message: "Title is required and must be between 3 and 160 characters",
		},
		{
			Field:   "body.content",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MinLength(50)},
			Message: "Content is required and must be at least 50 characters",
		},
		{
			Field:   "body.coverUrl",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isURL")},
			Message: "Cover image must be a valid URL",
		},
		{
			Field:   "body.tags",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isArray"), rules.MaxLength(10)},
			Message: "Tags must be a list of at most 10 entries",
		},
	}
}

func blogUpdate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.slug",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isSlug")},
			Message: "A valid article slug is required",
		},
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MinLength(3), rules.MaxLength(160)},
			Message: "Title must be between 3 and 160 characters",
		},
		{
			Field:   "body.content",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MinLength(50)},
			Message: "Content must be at least 50 characters",
		},
	}
}
