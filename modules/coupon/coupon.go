// Package coupon implements coupon CRUD, listing and redemption.
package coupon

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Coupon is the stored coupon document.
type Coupon struct {
	ID           bson.ObjectID `bson:"_id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	Code         string        `bson:"code" json:"code"`
	Discount     float64       `bson:"discount" json:"discount"`
	DiscountType string        `bson:"discount_type" json:"discountType"`
	StoreID      bson.ObjectID `bson:"store_id" json:"storeId"`
	Category     string        `bson:"category,omitempty" json:"category,omitempty"`
	Terms        string        `bson:"terms,omitempty" json:"terms,omitempty"`
	ExpiresAt    *time.Time    `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
	Redemptions  int64         `bson:"redemptions" json:"redemptions"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Expired reports whether the coupon's expiry has passed.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// ListParams filters and pages the coupon listing.
type ListParams struct {
	Page     int64
	PerPage  int64
	Category string
	StoreID  string
}

// Redemption is the payload returned by a successful redeem call.
type Redemption struct {
	Coupon Coupon `json:"coupon"`
	QRCode string `json:"qrCode"`
}
