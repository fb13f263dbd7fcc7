package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

// TransactionStatuses is the closed cashback transaction state list. The
// transition endpoint only accepts states reachable from pending or approved.
var TransactionStatuses = []string{"pending", "approved", "rejected", "paid"}

func transactionCreate() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "body.offerId",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid offer id is required",
		},
		{
			Field:   "body.orderAmount",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isFloat"), rules.Min(0.01)},
			Message: "Order amount must be greater than zero",
		},
		{
			Field:   "body.orderReference",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isString"), rules.MaxLength(64)},
			Message: "Order reference is required and must be at most 64 characters",
		},
	}
}

func transactionTransition() rules.RuleSet {
	return rules.RuleSet{
		{
			Field:   "params.id",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.Bare("isObjectID")},
			Message: "A valid transaction id is required",
		},
		{
			Field:   "body.status",
			Rules:   []rules.Token{rules.Bare("notEmpty"), rules.OneOf(TransactionStatuses...)},
			Message: "Status must be one of pending, approved, rejected or paid",
		},
		{
			Field:   "body.note",
			Rules:   []rules.Token{rules.Bare("optional"), rules.Bare("isString"), rules.MaxLength(500)},
			Message: "Note must be at most 500 characters",
		},
	}
}
