package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

// CouponCategories is the closed category list shared by coupons and
// cashback offers.
var CouponCategories = []string{
	"electronics", "fashion", "food", "travel", "beauty", "home", "sports", "other",
}

func couponCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MaxLength(140)},
			Message: "Title is required and must be at most 140 characters",
		},
		{
			Field:   "body.code",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isCode")},
			Message: "Coupon code must be 3-32 uppercase letters, digits or hyphens",
		},
		{
			Field:   "body.discount",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isFloat"), rules.Min(0)},
			Message: "Discount must be a positive number",
		},
		{
			Field:   "body.discountType",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.OneOf("percentage", "fixed")},
			Message: "Discount type must be percentage or fixed",
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
			Field:   "body.expiresAt",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isDate")},
			Message: "Expiry must be an ISO-8601 date",
		},
		{
			Field:   "body.terms",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(2000)},
			Message: "Terms must be at most 2000 characters",
		},
	}
}

func couponUpdate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.id",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid coupon id is required",
		},
		{
			Field:   "body.title",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(140)},
			Message: "Title must be at most 140 characters",
		},
		{
			Field:   "body.discount",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isFloat"), rules.Min(0)},
			Message: "Discount must be a positive number",
		},
		{
			Field:   "body.discountType",
			Rules:   []rules.Token{rules.Bare("optional"), rules.OneOf("percentage", "fixed")},
			Message: "Discount type must be percentage or fixed",
		},
		{
			Field:   "body.category",
			Rules:   []rules.Token{rules.Bare("optional"), rules.OneOf(CouponCategories...)},
			Message: "Category is not recognized",
		},
		{
			Field:   "body.expiresAt",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isDate")},
			Message: "Expiry must be an ISO-8601 date",
		},
	}
}

func couponRedeem() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.code",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isCode")},
			Message: "Coupon code must be 3-32 uppercase letters, digits or hyphens",
		},
	}
}

func couponList() rules.RuleSet {
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
			Field:   "query.category",
			Rules:   []rules.Token{rules.Bare("optional"), rules.OneOf(CouponCategories...)},
			Message: "Category is not recognized",
		},
		{
			Field:   "query.storeId",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isObjectID")},
			Message: "Store filter must be a valid store id",
		},
	}
}
