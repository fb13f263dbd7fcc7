// Package rulesets declares the platform's static validation configuration:
// one named rule set per entity operation plus the whole-payload schemas.
// Everything here is compiled once at startup; a malformed declaration stops
// the process instead of silently skipping checks at request time.
package rulesets

import "github.com/dealkit/dealkit/pkg/rules"

// Rule set names, grouped by entity and operation.
const (
	UserRegister = "user.register"
	UserLogin    = "user.login"

	CouponCreate = "coupon.create"
	CouponUpdate = "coupon.update"
	CouponRedeem = "coupon.redeem"
	CouponList   = "coupon.list"

	CashbackCreate = "cashback.create"
	CashbackUpdate = "cashback.update"

	StoreCreate = "store.create"
	StoreUpdate = "store.update"

	TransactionCreate     = "transaction.create"
	TransactionTransition = "transaction.transition"

	ReviewCreate = "review.create"

	BlogCreate = "blog.create"
	BlogUpdate = "blog.update"

	Pagination = "pagination"
)

// All returns the complete rule-set table.
func All() map[string]rules.RuleSet {
	return map[string]rules.RuleSet{
		UserRegister: userRegister(),
		UserLogin:    userLogin(),

		CouponCreate: couponCreate(),
		CouponUpdate: couponUpdate(),
		CouponRedeem: couponRedeem(),
		CouponList:   couponList(),

		CashbackCreate: cashbackCreate(),
		CashbackUpdate: cashbackUpdate(),

		StoreCreate: storeCreate(),
		StoreUpdate: storeUpdate(),

		TransactionCreate:     transactionCreate(),
		TransactionTransition: transactionTransition(),

		ReviewCreate: reviewCreate(),

		BlogCreate: blogCreate(),
		BlogUpdate: blogUpdate(),

		Pagination: pagination(),
	}
}

// NewRegistry compiles the full table. Fails with a ConfigError naming the
// offending rule set, field and token.
func NewRegistry() (*rules.Registry, error) {
	return rules.NewRegistry(All())
}

// MustNewRegistry panics on a broken table.
func MustNewRegistry() *rules.Registry {
	return rules.MustNewRegistry(All())
}
