// Package cashback implements cashback offers and the transaction lifecycle:
// a purchase is tracked as pending, then approved or rejected by an
// operator, and finally paid out. Approval notifies the user by email.
package cashback

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Offer is a stored cashback offer.
type Offer struct {
	ID          bson.ObjectID `bson:"_id" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Rate        float64       `bson:"rate" json:"rate"`
	StoreID     bson.ObjectID `bson:"store_id" json:"storeId"`
	Category    string        `bson:"category,omitempty" json:"category,omitempty"`
	MaxCashback float64       `bson:"max_cashback,omitempty" json:"maxCashback,omitempty"`
	ExpiresAt   *time.Time    `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}

// CashbackFor computes the cashback amount for an order, applying the
// offer's cap when set.
func (o Offer) CashbackFor(orderAmount float64) float64 {
	amount := orderAmount * o.Rate / 100
	if o.MaxCashback > 0 && amount > o.MaxCashback {
		return o.MaxCashback
	}
	return amount
}

// Status is the lifecycle state of a cashback transaction.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// transitions is the closed set of allowed state changes.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusPaid},
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transaction is a stored cashback transaction.
type Transaction struct {
	ID             bson.ObjectID `bson:"_id" json:"id"`
	OfferID        bson.ObjectID `bson:"offer_id" json:"offerId"`
	UserEmail      string        `bson:"user_email" json:"userEmail"`
	OrderAmount    float64       `bson:"order_amount" json:"orderAmount"`
	OrderReference string        `bson:"order_reference" json:"orderReference"`
	CashbackAmount float64       `bson:"cashback_amount" json:"cashbackAmount"`
	Status         Status        `bson:"status" json:"status"`
	Note           string        `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}
